package main

import (
	"field-route-service/internal/cli"
	"os"
)

func main() {
	if err := cli.BuildCLI().Execute(); err != nil {
		os.Exit(1)
	}
}
