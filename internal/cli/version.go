package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "inkwell %s\n", orUnknown(a.build.Version))
			fmt.Fprintf(out, "Commit: %s\n", orUnknown(a.build.Commit))
			fmt.Fprintf(out, "Built: %s\n", orUnknown(a.build.Date))
			fmt.Fprintf(out, "Go: %s\n", runtime.Version())
			return nil
		},
	}
}
