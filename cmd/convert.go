package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/adbreak/breakgen/app"
	"github.com/adbreak/breakgen/config"
	"github.com/adbreak/breakgen/pkg/export"
)

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert <instance.json>",
	Short: "Convert a stored instance to solver form",
	Args:  cobra.ExactArgs(1),
	RunE:  convertInstance,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output file, stdout when empty")
	rootCmd.AddCommand(convertCmd)
}

func convertInstance(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	configureLogging(config.LoggingConfig{Level: "info"})
	svc, err := app.New()
	if err != nil {
		return err
	}
	if convertOut == "" {
		_, err := svc.ConvertFile(ctx, args[0], cmd.OutOrStdout())
		return err
	}
	return export.WriteFile(convertOut, func(w io.Writer) error {
		_, err := svc.ConvertFile(ctx, args[0], w)
		return err
	})
}

