// Package config handles loading of environment-sourced settings
// for the application (which should be populated by the .env file in main.go).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application,
// typically loaded from environment variables.
type Config struct {
	RedshiftHost     string
	RedshiftDB       string
	RedshiftUser     string
	RedshiftPassword string
	RedshiftPort     int

	Environment   string
	CopyRoleARN   string
	DataBucket    string
	UploadRoleARN string
	AWSRegion     string

	StagingDir string
	ListenAddr string
}

// LoadConfig loads application settings from environment variables.
// Variable names follow the deployment's existing convention.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		RedshiftHost:     os.Getenv("host"),
		RedshiftDB:       os.Getenv("dbname"),
		RedshiftUser:     os.Getenv("user"),
		RedshiftPassword: os.Getenv("password"),
		Environment:      getEnvOrDefault("env", "dev"),
		CopyRoleARN:      os.Getenv("redshift_copy_arn"),
		DataBucket:       os.Getenv("data_bucket"),
		UploadRoleARN:    os.Getenv("upload_role_arn"),
		AWSRegion:        os.Getenv("aws_region"),
		StagingDir:       getEnvOrDefault("staging_dir", "raw"),
		ListenAddr:       getEnvOrDefault("listen_addr", ":8000"),
	}

	if cfg.RedshiftHost == "" {
		return nil, errors.New("host environment variable not set")
	}
	if cfg.RedshiftDB == "" {
		return nil, errors.New("dbname environment variable not set")
	}
	if cfg.RedshiftUser == "" {
		return nil, errors.New("user environment variable not set")
	}
	if cfg.RedshiftPassword == "" {
		return nil, errors.New("password environment variable not set")
	}
	if cfg.DataBucket == "" {
		return nil, errors.New("data_bucket environment variable not set")
	}

	port := getEnvOrDefault("port", "5439")
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid port value '%s': %w", port, err)
	}
	cfg.RedshiftPort = p

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
