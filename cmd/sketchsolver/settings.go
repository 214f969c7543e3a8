package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/config"
	"github.com/example/sketchsolver/internal/notify"
	"github.com/example/sketchsolver/internal/theme"
)

const envPrefix = "SKETCHSOLVER"

// addSettingsFlags declares the flags every subcommand shares.
func addSettingsFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.String("config", "", "rc file to read instead of the default search path")
	f.String("solver-url", "", "solver endpoint (default "+config.New().SolverURL+")")
	f.String("theme", "", "theme name or theme file")
	f.String("save-dir", "", "directory downloads are written to")
	f.Bool("notify-submit", false, "desktop notification when the solver answers")
	f.Bool("notify-save", false, "desktop notification when a drawing is saved")
	f.Bool("notify-copy", false, "desktop notification when something is copied")
}

// settings is the merged configuration for one command run.
type settings struct {
	cfg    *config.Config
	loader *config.Loader
}

// loadSettings merges, highest first: flags, SKETCHSOLVER_* environment,
// the rc file, built-in defaults.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	path, _ := flags.GetString("config")
	if path == "" {
		path = configPathOverride
	}
	loader := config.NewLoader(version, path)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("solver_url", cfg.SolverURL)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("save_dir", cfg.SaveDir)
	v.SetDefault("notify.submit", cfg.Notify.Submit)
	v.SetDefault("notify.save", cfg.Notify.Save)
	v.SetDefault("notify.copy", cfg.Notify.Copy)

	binds := map[string]string{
		"solver_url":    "solver-url",
		"theme":         "theme",
		"save_dir":      "save-dir",
		"notify.submit": "notify-submit",
		"notify.save":   "notify-save",
		"notify.copy":   "notify-copy",
	}
	for key, name := range binds {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	cfg.SolverURL = v.GetString("solver_url")
	cfg.Theme = v.GetString("theme")
	cfg.SaveDir = v.GetString("save_dir")
	cfg.Notify = config.Notify{
		Submit: v.GetBool("notify.submit"),
		Save:   v.GetBool("notify.save"),
		Copy:   v.GetBool("notify.copy"),
	}
	return &settings{cfg: cfg, loader: loader}, nil
}

// notifier builds a notifier with the configured events enabled.
func (s *settings) notifier(logger pslog.Logger) *notify.Notifier {
	n := notify.New(notify.LoadPreferences(), logger)
	n.Enable(notify.EventSubmit, s.cfg.Notify.Submit)
	n.Enable(notify.EventSave, s.cfg.Notify.Save)
	n.Enable(notify.EventCopy, s.cfg.Notify.Copy)
	return n
}

// themes resolves the configured theme. A dark theme replaces the built-in
// dark one, anything else replaces the light one.
func (s *settings) themes() (light, dark *theme.Theme, err error) {
	light, dark = theme.Light(), theme.Dark()
	if s.cfg.Theme == "" {
		return light, dark, nil
	}
	t, err := theme.NewLoader(s.cfg.Themes).Load(s.cfg.Theme)
	if err != nil {
		return nil, nil, err
	}
	if theme.IsDark(s.cfg.Theme) || theme.IsDark(t.Name) {
		return light, t, nil
	}
	return t, dark, nil
}
