package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/roboco-io/jww2dxf/internal/cli"
)

var version = "dev"

func main() {
	// .env is optional
	_ = godotenv.Load()

	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
