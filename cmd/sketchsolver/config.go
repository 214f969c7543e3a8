package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the merged configuration in rc format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), st.cfg.String())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the merged configuration to the rc file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			path, err := st.loader.Save(st.cfg)
			if err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "configuration saved to %s\n", path)
			return err
		},
	})
	return cmd
}
