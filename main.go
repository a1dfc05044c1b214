package main

import (
	"os"

	"github.com/hamzasdq/earnlybot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
