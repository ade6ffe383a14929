package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivolan/torque_analyzer/analysis"
	"github.com/pivolan/torque_analyzer/config"
	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/plot"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "torque_analyzer",
		Short: "Statistics and process capability of torque/angle fastening exports",
		Long: `torque_analyzer reads CSV exports of a fastening process, splits torque and angle
measurements into OK and NOK samples and reports descriptive statistics,
Cp/Cpk, Pp/Ppk and chart data, as a CLI, an HTTP API or a Telegram bot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newHeadersCmd(), newAnalyzeCmd(), newReportCmd())
	return root
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := config.NewLogger(cfg.LoggingConfig, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

func newService(cfg *config.Config, logger *slog.Logger) *analysis.Service {
	return analysis.NewService(plot.NewDeriver(cfg.HistogramBins, cfg.NormalPoints), logger)
}

// mappingFlags binds the column mapping flags shared by analyze and report.
type mappingFlags struct {
	torqueStatus string
	torqueValue  string
	angleStatus  string
	angleValue   string
}

func (f *mappingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.torqueStatus, "torque-status", "", "torque status column (empty: every torque value is OK)")
	cmd.Flags().StringVar(&f.torqueValue, "torque", "", "torque value column")
	cmd.Flags().StringVar(&f.angleStatus, "angle-status", "", "angle status column (empty: every angle value is OK)")
	cmd.Flags().StringVar(&f.angleValue, "angle", "", "angle value column")
	_ = cmd.MarkFlagRequired("torque")
	_ = cmd.MarkFlagRequired("angle")
}

func (f *mappingFlags) mapping() models.ColumnMapping {
	return models.ColumnMapping{
		TorqueStatus: f.torqueStatus,
		TorqueValue:  f.torqueValue,
		AngleStatus:  f.angleStatus,
		AngleValue:   f.angleValue,
	}
}

// analyzeFile reads path and runs a full analysis of it.
func analyzeFile(path string, m models.ColumnMapping) (*analysis.Service, models.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.AnalysisResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := config.GetConfig()
	svc := newService(cfg, newLogger(cfg))
	result, err := svc.Analyze(path, data, m)
	return svc, result, err
}
