package main

import (
	"os"

	"github.com/civiclink/civiclink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
