package main

import (
	"fmt"

	"github.com/nvandessel/lifsim/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Serve lif_trace, lif_rate, lif_noise and lif_sweep as MCP tools over
stdio. Tool inputs default to the loaded configuration. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "lifsim",
				Version: version,
				Lif:     cfg,
				Logger:  newLogger(cmd, cfg),
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			return server.Run(cmd.Context())
		},
	}
}
