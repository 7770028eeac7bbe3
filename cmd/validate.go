package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/client-info-cli/internal/clientinfo"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check the input file count, existence, extension and header",
	Long: `Runs the file-level checks only. No geocoding is performed.

Examples:
  client-info-cli validate clients.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := clientinfo.ValidateInputs(args); err != nil {
			return err
		}
		zap.L().Debug("validate: input ok", zap.Strings("paths", args))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
