package main

import (
	"log"
	"os"

	"github.com/dataplatform-io/dynoshift/internal/cli"
	"github.com/dataplatform-io/dynoshift/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	defer logger.Close()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logger.Close()
		os.Exit(1)
	}
}
