package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/appstate"
	"github.com/example/sketchsolver/internal/display"
	"github.com/example/sketchsolver/internal/sketch"
	"github.com/example/sketchsolver/internal/solver"
	"github.com/example/sketchsolver/internal/surface"
	"github.com/example/sketchsolver/internal/theme"
)

func newDrawCmd() *cobra.Command {
	var (
		monitor    string
		strokesIn  string
		strokesOut string
		colorName  string
		brushSize  int
		grid       bool
		dark       bool
	)
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Open the drawing window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			light, darkTheme, err := st.themes()
			if err != nil {
				return err
			}

			opts := st.cfg.SessionOptions()
			if cmd.Flags().Changed("color") {
				col, err := sketch.LookupColor(colorName)
				if err != nil {
					return err
				}
				opts = append(opts, sketch.WithColor(col))
			}
			if cmd.Flags().Changed("brush-size") {
				opts = append(opts, sketch.WithBrushSize(brushSize))
			}
			if cmd.Flags().Changed("grid") {
				opts = append(opts, sketch.WithGrid(grid))
			}

			var strokes []sketch.Stroke
			if strokesIn != "" {
				d, err := readDrawingFile(strokesIn)
				if err != nil {
					return err
				}
				strokes = d.Strokes
				opts = append(opts, sketch.WithBackground(d.Background))
			}

			viewport, err := display.Viewport(monitor)
			if err != nil {
				logger.With("err", err).Debug("monitor query failed, using default viewport")
			}
			themeName := st.cfg.Theme
			if dark {
				themeName = "dark"
			}
			view := theme.NewContext(themeName, surface.IsMobile(viewport.X))

			app := appstate.New(
				appstate.WithSolver(solver.New(st.cfg.SolverURL)),
				appstate.WithNotifier(st.notifier(logger)),
				appstate.WithThemes(view, light, darkTheme),
				appstate.WithSaveDir(st.cfg.SaveDir),
				appstate.WithViewport(viewport),
				appstate.WithSessionOptions(opts...),
				appstate.WithStrokes(strokes),
				appstate.WithLogger(logger),
				appstate.WithOnClose(func(s *sketch.Session) {
					if strokesOut == "" {
						return
					}
					if err := writeDrawingFile(strokesOut, s.Drawing()); err != nil {
						logger.With("err", err, "path", strokesOut).Error("save strokes failed")
						return
					}
					logger.Info("strokes saved", "path", strokesOut, "strokes", s.History().Len())
				}),
			)
			logger.Debug("opening window", "solver", st.cfg.SolverURL, "viewport", fmt.Sprintf("%dx%d", viewport.X, viewport.Y))
			app.Run(ctx)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&monitor, "monitor", "", "monitor to size the window for: primary, #index or name")
	f.StringVar(&strokesIn, "strokes", "", "stroke file to start from")
	f.StringVar(&strokesOut, "save-strokes", "", "write the stroke history here when the window closes")
	f.StringVar(&colorName, "color", "", "initial pen colour (palette name, colour name or #RRGGBB)")
	f.IntVar(&brushSize, "brush-size", sketch.DefaultBrushSize, "initial brush size")
	f.BoolVar(&grid, "grid", false, "start with the grid shown")
	f.BoolVar(&dark, "dark", false, "start in dark mode")
	return cmd
}

func readDrawingFile(path string) (sketch.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return sketch.Drawing{}, err
	}
	defer f.Close()
	d, err := sketch.ReadDrawing(f)
	if err != nil {
		return sketch.Drawing{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func writeDrawingFile(path string, d sketch.Drawing) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sketch.WriteDrawing(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
