package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/warden/ai"
)

var statesCmd = &cobra.Command{
	Use:   "states [name]",
	Short: "List the behavior states, or look one up by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			s, err := ai.ParseState(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", int(s), s)
			return nil
		}
		for _, s := range ai.States() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", int(s), s)
		}
		return nil
	},
}
