package etl

import "fmt"

// CredentialError means no (or only partial) AWS credentials were
// resolvable when the source store was first contacted.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("aws credentials not found: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// SourceStoreError wraps any non-credential backend failure from the
// source store.
type SourceStoreError struct {
	Table string
	Err   error
}

func (e *SourceStoreError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("source store error: %v", e.Err)
	}
	return fmt.Sprintf("source store error on table %s: %v", e.Table, e.Err)
}

func (e *SourceStoreError) Unwrap() error { return e.Err }

// SchemaError means a table's key schema carries no hash/partition key.
type SchemaError struct {
	Table string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s has no partition key in its key schema", e.Table)
}

// UploadError wraps an object store upload failure.
type UploadError struct {
	Path   string
	Bucket string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s to %s: %v", e.Path, e.Bucket, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// WarehouseError wraps a failed warehouse statement. The enclosing
// transaction has already been rolled back when this is returned.
type WarehouseError struct {
	Stmt string
	Err  error
}

func (e *WarehouseError) Error() string {
	return fmt.Sprintf("warehouse statement failed (%s): %v", e.Stmt, e.Err)
}

func (e *WarehouseError) Unwrap() error { return e.Err }
