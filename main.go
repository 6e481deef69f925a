package main

import (
	"os"

	"github.com/chutelab/chute/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
