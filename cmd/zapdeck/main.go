package main

import (
	"os"

	"github.com/zapdeck/zapdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
