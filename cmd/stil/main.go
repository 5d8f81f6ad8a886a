package main

import (
	"os"

	"stil/cmd/stil/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
