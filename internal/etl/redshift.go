package etl

import (
	"database/sql"
	"fmt"

	"github.com/dataplatform-io/dynoshift/pkg/logger"
)

// RedshiftLoader executes DDL and bulk-load statements over one persistent
// warehouse connection. Unlike the legacy job it replaces, every failed
// statement is rolled back and returned to the caller instead of being
// swallowed; the pipeline decides per-table continuation.
type RedshiftLoader struct {
	DB *sql.DB
}

func NewRedshiftLoader(db *sql.DB) *RedshiftLoader {
	return &RedshiftLoader{DB: db}
}

// EnsureTable issues the create-if-not-exists DDL with the fixed
// five-column envelope schema. Idempotent by construction.
func (l *RedshiftLoader) EnsureTable(name string) error {
	return l.exec(createStatement(name))
}

// ResetTable truncates the table. Irreversible, no backup.
func (l *RedshiftLoader) ResetTable(name string) error {
	return l.exec(truncateStatement(name))
}

// LoadFromStaged performs the full-refresh sequence: ensure the table
// exists, truncate it, then COPY the staged file in under the given
// authority role.
func (l *RedshiftLoader) LoadFromStaged(uri, table, roleARN string) error {
	if err := l.EnsureTable(table); err != nil {
		return err
	}
	if err := l.ResetTable(table); err != nil {
		return err
	}
	return l.exec(copyStatement(table, uri, roleARN))
}

func (l *RedshiftLoader) Close() error {
	return l.DB.Close()
}

// exec runs one statement in its own transaction: commit on success,
// rollback on failure.
func (l *RedshiftLoader) exec(query string) error {
	tx, err := l.DB.Begin()
	if err != nil {
		logger.Errorf("Failed to begin warehouse transaction: %v", err)
		return &WarehouseError{Stmt: query, Err: err}
	}

	if _, err := tx.Exec(query); err != nil {
		tx.Rollback()
		logger.Errorf("Error executing query: %v", err)
		return &WarehouseError{Stmt: query, Err: err}
	}

	if err := tx.Commit(); err != nil {
		logger.Errorf("Failed to commit warehouse transaction: %v", err)
		return &WarehouseError{Stmt: query, Err: err}
	}
	return nil
}

func createStatement(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id varchar,
		data varchar(max),
		createdAt datetime,
		updatedAt datetime,
		isDeleted boolean
	)`, table)
}

func truncateStatement(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", table)
}

// copyStatement builds the Redshift bulk-load command. COPY takes no bind
// parameters, so the URI and role are interpolated directly.
func copyStatement(table, uri, roleARN string) string {
	return fmt.Sprintf(`COPY %s FROM '%s'
		IAM_ROLE '%s'
		delimiter ','
		ignoreheader 1
		csv quote as '"'`, table, uri, roleARN)
}
