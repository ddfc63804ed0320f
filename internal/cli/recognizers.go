package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/gesture"
)

func newRecognizersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recognizers",
		Short: "List the registered recognizer identifiers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, id := range gesture.Recognizers() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
		},
	}
}
