// Command bspwm-node-flags prints the flags of a bspwm node for polybar:
//
//	bspwm-node-flags "$(bspc query -T -n focused)"
package main

import (
	"fmt"
	"os"

	"github.com/aiden/nedots/pkg/nodeflags"
	"github.com/spf13/cobra"
)

func newCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "bspwm-node-flags <json-tree>",
		Short:         "Display bspwm node flags",
		Long:          "Print S (sticky), X (locked), M (marked) and P (private) for the node\ndescribed by the JSON tree, typically the output of `bspc query -T -n focused`.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := nodeflags.Parse([]byte(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), flags.Format())
			return err
		},
	}
}

func main() {
	if err := newCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
