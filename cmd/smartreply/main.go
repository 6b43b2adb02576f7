package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/smartreplyhq/smartreply/internal/cli"
)

func main() {
	// Optional .env for SMARTREPLY_BASE_URL and friends.
	_ = godotenv.Load()

	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
