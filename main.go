package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"suivi/cmd"
	"suivi/internal/logging"
)

func main() {
	// A missing .env is fine, environment variables still apply
	_ = godotenv.Load()

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
