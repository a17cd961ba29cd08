package cli

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/dataplatform-io/dynoshift/internal/api"
	"github.com/dataplatform-io/dynoshift/internal/config"
	"github.com/dataplatform-io/dynoshift/internal/etl"
	"github.com/dataplatform-io/dynoshift/pkg/database"
	"github.com/dataplatform-io/dynoshift/pkg/logger"
)

func runExtract(opts *ExtractOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if opts.StagingDir != "" {
		cfg.StagingDir = opts.StagingDir
	}
	if opts.Bucket != "" {
		cfg.DataBucket = opts.Bucket
	}

	if cfg.CopyRoleARN == "" {
		logger.Warnf("redshift_copy_arn not set; COPY will run without an authority role")
	}

	sess, err := newSession(cfg.AWSRegion)
	if err != nil {
		return fmt.Errorf("failed to create AWS session: %w", err)
	}

	db, err := database.ConnectRedshift(cfg.RedshiftHost, cfg.RedshiftDB,
		cfg.RedshiftUser, cfg.RedshiftPassword, cfg.RedshiftPort)
	if err != nil {
		return err
	}
	warehouse := etl.NewRedshiftLoader(db)
	defer warehouse.Close()

	pipeline := etl.NewPipeline(
		etl.NewDynamoGateway(sess),
		etl.NewS3Gateway(sess),
		warehouse,
		etl.NewStagingWriter(cfg.StagingDir),
		cfg.DataBucket,
		cfg.CopyRoleARN,
		config.FilterFor(cfg.Environment),
	)

	fmt.Printf("Starting extraction run for environment %s into bucket %s...\n",
		cfg.Environment, cfg.DataBucket)
	report, err := pipeline.Run()
	if err != nil {
		return err
	}

	for _, res := range report.Succeeded() {
		logger.Infof("OK   %s (%d rows, staged at %s)", res.Table, res.Rows, res.StagedPath)
	}
	for _, res := range report.Failed() {
		logger.Errorf("FAIL %s: %v", res.Table, res.Err)
	}
	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d tables failed", len(failed), len(report.Results))
	}

	fmt.Println("Extraction run finished successfully.")
	return nil
}

func runServe(addr string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.ListenAddr
	}

	provider := func() (etl.ObjectStore, error) {
		return etl.NewAssumedRoleGateway(cfg.AWSRegion, cfg.UploadRoleARN)
	}

	return api.NewAPI(provider, cfg.DataBucket).Run(addr)
}

func newSession(region string) (*session.Session, error) {
	awsConfig := aws.NewConfig()
	if region != "" {
		awsConfig = awsConfig.WithRegion(region)
	}
	return session.NewSession(awsConfig)
}
