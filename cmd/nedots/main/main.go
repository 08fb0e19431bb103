package main

import (
	"os"

	"github.com/aiden/nedots/cmd/nedots"
	"github.com/aiden/nedots/pkg/ui"
)

func main() {
	rootCmd := nedots.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.NewPrinter(os.Stderr, ui.FormatAuto).Error(err)
		os.Exit(1)
	}
}
