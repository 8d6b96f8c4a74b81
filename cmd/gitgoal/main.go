package main

import (
	"os"

	"github.com/gitgoal/gitgoal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
