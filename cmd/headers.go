package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivolan/torque_analyzer/config"
)

func newHeadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "headers <file>",
		Short: "List the column headers of a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			cfg := config.GetConfig()
			headers, err := newService(cfg, newLogger(cfg)).ListHeaders(args[0], data)
			if err != nil {
				return err
			}
			for _, h := range headers {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
}
