package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect lifsim configuration",
		Long: `View and check lifsim configuration.

Configuration is read from ~/.lifsim/config.yaml (or --config), then
overridden by LIFSIM_* environment variables.

Examples:
  lifsim config show                    # Effective settings as YAML
  lifsim config show --json             # Effective settings as JSON
  lifsim config validate --config my.yaml`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigValidateCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, cfg)
			}
			data, err := cfg.Marshal()
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]bool{"valid": true})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
			return nil
		},
	}
}
