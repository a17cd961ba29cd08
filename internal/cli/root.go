package cli

import (
	"github.com/spf13/cobra"

	"github.com/dataplatform-io/dynoshift/pkg/logger"
)

func NewRootCmd() *cobra.Command {
	var logFile string

	rootCmd := &cobra.Command{
		Use:   "dynoshift",
		Short: "dynoshift - full-refresh extraction from DynamoDB into Redshift",
		Long: `dynoshift is a CLI tool for extracting full DynamoDB table contents,
staging them as CSV files in S3 and bulk-loading them into Redshift.
It also serves the HTTP image-upload endpoint.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == "" {
				return nil
			}
			return logger.InitLogger(logFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")

	rootCmd.AddCommand(NewExtractCmd())
	rootCmd.AddCommand(NewServeCmd())

	return rootCmd
}
