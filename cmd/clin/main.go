package main

import (
	"os"

	"github.com/cairoverse/clin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
