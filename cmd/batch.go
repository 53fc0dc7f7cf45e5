package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adbreak/breakgen/app"
	"github.com/adbreak/breakgen/config"
	"github.com/adbreak/breakgen/infra/logger"
	"github.com/adbreak/breakgen/qa/scenarios"
)

var (
	batchOut     string
	batchMetrics string
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Generate every run listed in a YAML manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  batch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "output directory for every run")
	batchCmd.Flags().StringVar(&batchMetrics, "metrics-textfile", "", "write batch metrics to this file")
	rootCmd.AddCommand(batchCmd)
}

func batch(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	configureLogging(config.LoggingConfig{Level: "info"})
	m, err := scenarios.Load(args[0])
	if err != nil {
		return err
	}
	if batchOut != "" {
		m.OutputDir = batchOut
	}
	svc, err := app.New()
	if err != nil {
		return err
	}
	out, err := scenarios.Run(ctx, m, svc)
	if err != nil {
		return fmt.Errorf("batch %s: %w", m.Name, err)
	}
	if err := svc.WriteMetrics(batchMetrics); err != nil {
		return err
	}
	logger.New("batch").Infof("batch %s: %d instances", m.Name, len(out))
	return nil
}
