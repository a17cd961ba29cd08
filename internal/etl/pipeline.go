package etl

import (
	"fmt"
	"time"

	"github.com/dataplatform-io/dynoshift/pkg/logger"
	"github.com/dataplatform-io/dynoshift/pkg/models"
)

// Pipeline drives the per-table extract sequence: scan, transform, stage,
// upload, load. Tables run strictly one after another.
type Pipeline struct {
	Source      SourceStore
	Store       ObjectStore
	Warehouse   Warehouse
	Staging     *StagingWriter
	Transformer *Transformer

	Bucket   string
	CopyARN  string
	Scheme   string
	Eligible func(table string) bool
}

func NewPipeline(source SourceStore, store ObjectStore, warehouse Warehouse, staging *StagingWriter, bucket, copyARN string, eligible func(string) bool) *Pipeline {
	return &Pipeline{
		Source:      source,
		Store:       store,
		Warehouse:   warehouse,
		Staging:     staging,
		Transformer: NewTransformer(),
		Bucket:      bucket,
		CopyARN:     copyARN,
		Scheme:      "s3",
		Eligible:    eligible,
	}
}

// Run lists the source tables and processes every eligible one. A table's
// failure is captured in the report rather than aborting the run; only a
// failure to list tables at all ends the run early.
func (p *Pipeline) Run() (*models.Report, error) {
	tables, err := p.Source.ListTables()
	if err != nil {
		logger.Errorf("Failed to list source tables: %v", err)
		return nil, err
	}

	report := &models.Report{}
	startTime := time.Now()

	for _, table := range tables {
		if p.Eligible != nil && !p.Eligible(table) {
			continue
		}
		logger.Infof("Starting %s", table)
		result := p.processTable(table)
		if result.Err != nil {
			logger.Errorf("Table %s failed: %v", table, result.Err)
		} else {
			logger.Infof("Table %s done. Rows: %d", table, result.Rows)
		}
		report.Add(result)
	}

	logger.Infof("Run finished in %s. Succeeded: %d, Failed: %d",
		time.Since(startTime), len(report.Succeeded()), len(report.Failed()))
	return report, nil
}

func (p *Pipeline) processTable(table string) models.TableResult {
	result := models.TableResult{Table: table}

	scan, err := p.Source.ScanTable(table)
	if err != nil {
		result.Err = err
		return result
	}
	result.Rows = len(scan.Items)

	records := p.Transformer.Transform(scan.Items, scan.Table.PartitionKey)

	localPath, err := p.Staging.Write(table, records)
	if err != nil {
		result.Err = err
		return result
	}
	result.StagedPath = localPath

	logger.Infof("Uploading %s to %s", table, p.Bucket)
	if err := p.Store.Upload(localPath, p.Bucket); err != nil {
		result.Err = err
		return result
	}

	uri := fmt.Sprintf("%s://%s/%s", p.Scheme, p.Bucket, localPath)
	logger.Infof("Copying %s to warehouse", table)
	if err := p.Warehouse.LoadFromStaged(uri, "raw_"+table, p.CopyARN); err != nil {
		result.Err = err
		return result
	}

	return result
}
