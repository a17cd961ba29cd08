package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ConnectRedshift opens a single persistent connection to the warehouse.
// Redshift speaks the postgres wire protocol, so lib/pq is the driver.
func ConnectRedshift(host, dbname, user, password string, port int) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=require",
		host, port, dbname, user, password)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening warehouse connection: %w", err)
	}

	// One long-lived connection; the loader has no pooling or reconnect.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to warehouse (ping failed): %w", err)
	}

	fmt.Println("Successfully connected to Redshift.")
	return db, nil
}
