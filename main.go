package main

import (
	"os"

	"github.com/westbourne-advisory/website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
