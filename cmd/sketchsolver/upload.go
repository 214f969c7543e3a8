package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/appstate"
	"github.com/example/sketchsolver/internal/solver"
	"github.com/example/sketchsolver/internal/upload"
)

type outputOptions struct {
	expand bool
	raw    bool
}

func (o outputOptions) print(w io.Writer, res *solver.Result) error {
	if o.raw {
		_, err := fmt.Fprintln(w, res.JSON())
		return err
	}
	for _, line := range res.Format(solver.FormatOptions{ExpandAll: o.expand}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newUploadCmd() *cobra.Command {
	var comment string
	var out outputOptions
	cmd := &cobra.Command{
		Use:   "upload <image>",
		Short: "Send a PNG or JPEG to the solver and print the answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			var up upload.Uploader
			if err := up.Select(args[0]); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), appstate.Notice(err))
				return err
			}
			payload, err := up.Payload()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), appstate.Notice(err))
				return err
			}
			img := up.Preview()
			logger.Debug("image accepted", "file", img.Name, "type", img.MediaType, "width", img.Bounds.Dx(), "height", img.Bounds.Dy())

			res, err := solver.New(st.cfg.SolverURL).Submit(ctx, payload, comment)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), appstate.Notice(err))
				return err
			}
			summary, _ := res.Text("title")
			st.notifier(logger).Submit(summary, img.Preview)
			return out.print(cmd.OutOrStdout(), res)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&comment, "comment", "m", "", "comment sent with the image (up to 200 characters)")
	f.BoolVar(&out.expand, "expand", false, "show every step")
	f.BoolVar(&out.raw, "json", false, "print the raw JSON answer")
	return cmd
}
