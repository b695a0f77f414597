package main

import (
	"os"

	"github.com/MrSnakeDoc/statuspage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
