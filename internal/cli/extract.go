package cli

import (
	"github.com/spf13/cobra"
)

type ExtractOptions struct {
	StagingDir string
	Bucket     string
}

func NewExtractCmd() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run the full extract-and-load pipeline over all eligible tables",
		RunE: func(c *cobra.Command, args []string) error {
			return runExtract(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.StagingDir, "staging-dir", "d", "", "Local staging directory (overrides staging_dir env)")
	cmd.Flags().StringVarP(&opts.Bucket, "bucket", "b", "", "Target S3 bucket (overrides data_bucket env)")

	return cmd
}

func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP image-upload endpoint",
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides listen_addr env)")

	return cmd
}
