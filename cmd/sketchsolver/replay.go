package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/appstate"
	"github.com/example/sketchsolver/internal/export"
	"github.com/example/sketchsolver/internal/sketch"
	"github.com/example/sketchsolver/internal/solver"
)

// Replay canvas size when the stroke file does not carry one.
const (
	replayWidth  = 800
	replayHeight = 500
)

func newReplayCmd() *cobra.Command {
	var (
		output  string
		grid    bool
		copyOut bool
		submit  bool
		comment string
		out     outputOptions
	)
	cmd := &cobra.Command{
		Use:   "replay <strokes.yaml>",
		Short: "Redraw a saved stroke file and write it as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			d, err := readDrawingFile(args[0])
			if err != nil {
				return err
			}
			w, h := d.Width, d.Height
			if w <= 0 {
				w = replayWidth
			}
			if h <= 0 {
				h = replayHeight
			}
			session := sketch.NewSession(w, h,
				sketch.WithBackground(d.Background),
				sketch.WithGrid(grid),
				sketch.WithGridSpacing(st.cfg.Canvas.GridSpacing),
			)
			session.Load(d.Strokes)
			notifier := st.notifier(logger)

			path := output
			if path == "" {
				path = filepath.Join(st.cfg.SaveDir, export.DownloadName)
			}
			data, err := export.ToImage(session)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), appstate.Notice(err))
				return err
			}
			if dir := filepath.Dir(path); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logger.Info("drawing written", "path", path, "strokes", session.History().Len())
			notifier.Save(path)

			if copyOut {
				if err := export.Copy(session); err != nil {
					return fmt.Errorf("copy: %w", err)
				}
				notifier.Copy("drawing")
			}
			if !submit {
				return nil
			}
			res, err := solver.New(st.cfg.SolverURL).Submit(ctx, export.DataURL("image/png", data), comment)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), appstate.Notice(err))
				return err
			}
			summary, _ := res.Text("title")
			snap, _ := session.Snapshot()
			notifier.Submit(summary, snap)
			return out.print(cmd.OutOrStdout(), res)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "PNG to write (default drawing.png in the save directory)")
	f.BoolVar(&grid, "grid", false, "draw the grid over the strokes")
	f.BoolVar(&copyOut, "copy", false, "also copy the PNG to the clipboard")
	f.BoolVar(&submit, "submit", false, "send the drawing to the solver and print the answer")
	f.StringVarP(&comment, "comment", "m", "", "comment sent with --submit")
	f.BoolVar(&out.expand, "expand", false, "show every step")
	f.BoolVar(&out.raw, "json", false, "print the raw JSON answer")
	return cmd
}
