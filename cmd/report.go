package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivolan/torque_analyzer/plot"
)

func newReportCmd() *cobra.Command {
	var (
		mf  mappingFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Write an interactive HTML chart report of a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := analyzeFile(args[0], mf.mapping())
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := plot.RenderHTMLReport(f, result); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out)
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "report.html", "output HTML file")
	return cmd
}
