package etl

import (
	"io"

	"github.com/dataplatform-io/dynoshift/pkg/models"
)

type SourceStore interface {
	ListTables() ([]string, error)
	ScanTable(name string) (*models.TableScan, error)
}

type ObjectStore interface {
	Upload(localPath, bucket string) error
	Put(bucket, key string, body io.Reader, contentType string) error
}

type Warehouse interface {
	EnsureTable(name string) error
	ResetTable(name string) error
	LoadFromStaged(uri, table, roleARN string) error
}
