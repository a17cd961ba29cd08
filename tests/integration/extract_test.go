package integration

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/dataplatform-io/dynoshift/internal/config"
	"github.com/dataplatform-io/dynoshift/internal/etl"
	"github.com/dataplatform-io/dynoshift/pkg/database"
)

// TestExtractAndLoad runs the pipeline against real AWS and Redshift
// endpoints. It needs the full environment (host, dbname, user, password,
// data_bucket, redshift_copy_arn) plus resolvable AWS credentials, so it is
// gated behind DYNOSHIFT_INTEGRATION.
func TestExtractAndLoad(t *testing.T) {
	if os.Getenv("DYNOSHIFT_INTEGRATION") == "" {
		t.Skip("set DYNOSHIFT_INTEGRATION to run against live backends")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	awsConfig := aws.NewConfig()
	if cfg.AWSRegion != "" {
		awsConfig = awsConfig.WithRegion(cfg.AWSRegion)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		t.Fatalf("Failed to create AWS session: %v", err)
	}

	db, err := database.ConnectRedshift(cfg.RedshiftHost, cfg.RedshiftDB,
		cfg.RedshiftUser, cfg.RedshiftPassword, cfg.RedshiftPort)
	if err != nil {
		t.Fatalf("Failed to connect to Redshift: %v", err)
	}
	warehouse := etl.NewRedshiftLoader(db)
	defer warehouse.Close()

	stagingDir := t.TempDir()
	pipeline := etl.NewPipeline(
		etl.NewDynamoGateway(sess),
		etl.NewS3Gateway(sess),
		warehouse,
		etl.NewStagingWriter(stagingDir),
		cfg.DataBucket,
		cfg.CopyRoleARN,
		config.HasPrefix("stg"),
	)

	report, err := pipeline.Run()
	if err != nil {
		t.Fatalf("Pipeline execution failed: %v", err)
	}

	for _, res := range report.Failed() {
		t.Errorf("Table %s failed: %v", res.Table, res.Err)
	}

	// Every staged file must carry the envelope header and one line per row.
	for _, res := range report.Succeeded() {
		f, err := os.Open(res.StagedPath)
		if err != nil {
			t.Fatalf("Failed to open staged file %s: %v", res.StagedPath, err)
		}
		rows, err := csv.NewReader(f).ReadAll()
		f.Close()
		if err != nil {
			t.Fatalf("Failed to parse staged file %s: %v", res.StagedPath, err)
		}
		if len(rows) != res.Rows+1 {
			t.Errorf("Table %s: staged %d rows, expected %d", res.Table, len(rows)-1, res.Rows)
		}
		if got := len(rows[0]); got != 5 {
			t.Errorf("Table %s: expected 5 columns, got %d", res.Table, got)
		}
	}
}
