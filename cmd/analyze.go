package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/report"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		mf       mappingFlags
		limits   models.CapabilityRequest
		asJSON   bool
		markdown bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Print statistics and capability indices of a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, result, err := analyzeFile(args[0], mf.mapping())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			limits.Stats.OK = result.Stats.OK
			limits.Stats.All = result.Stats.All
			capability := svc.Capability(limits)

			style := report.StyleDefault
			if markdown {
				style = report.StyleMarkdown
			}
			fmt.Fprintf(out, "Analysis %s of %s\n\n", result.AnalysisID, result.FileName)
			fmt.Fprintln(out, report.StatsTable(result.Stats, style))
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.BoxPlotTable(result.Charts, style))
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.CapabilityTable(capability, style))
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVar(&limits.Limits.Torque.LIE, "torque-lie", "", "lower torque specification limit")
	cmd.Flags().StringVar(&limits.Limits.Torque.LSE, "torque-lse", "", "upper torque specification limit")
	cmd.Flags().StringVar(&limits.Limits.Angle.LIE, "angle-lie", "", "lower angle specification limit")
	cmd.Flags().StringVar(&limits.Limits.Angle.LSE, "angle-lse", "", "upper angle specification limit")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print tables as markdown")
	return cmd
}
