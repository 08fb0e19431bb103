package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/aiden/nedots/cmd/nedots"
	"github.com/aiden/nedots/internal/version"
)

func main() {
	rootCmd := nedots.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "NEDOTS",
		Section: "1",
		Source:  "nedots " + version.Version,
		Manual:  "nedots manual",
	}

	if len(os.Args) > 1 {
		// One page per command into the given directory
		if err := doc.GenManTree(rootCmd, header, os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
