package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/factspark/factspark/internal/cli"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
