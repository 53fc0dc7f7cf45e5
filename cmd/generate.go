package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adbreak/breakgen/app"
	"github.com/adbreak/breakgen/infra/logger"
)

var generateSeed int64

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one instance and its solver form",
	RunE:  generate,
}

func init() {
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "PRNG seed, overrides the configured seed")
	rootCmd.AddCommand(generateCmd)
}

func generate(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	var seed *int64
	if cmd.Flags().Changed("seed") {
		seed = &generateSeed
	}
	svc, err := app.New()
	if err != nil {
		return err
	}
	res, err := svc.Generate(ctx, cfg, seed)
	if err != nil {
		return err
	}
	logger.New("generate").Infof("instance %s (seed %d): %s, %s",
		res.Instance.Name, res.Instance.Seed, res.Files.Instance, res.Files.Solver)
	return nil
}
