package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/script"
)

func newScriptCommand(a *app) *cobra.Command {
	var timeout time.Duration
	var quiet bool
	cmd := &cobra.Command{
		Use:   "script <document.yaml> <script.lua>",
		Short: "Run a Lua script against a document",
		Long: `Open a document fixture, run a Lua script against it through the ink
module, then print the host tree. Script output from print goes to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			if timeout <= 0 {
				timeout = a.cfg.Script.Timeout
			}
			out := cmd.OutOrStdout()
			r := script.New(s,
				script.WithOutput(out),
				script.WithLogger(a.log),
				script.WithTimeout(timeout),
			)
			defer r.Close()

			if err := r.RunFile(cmd.Context(), args[1]); err != nil {
				return err
			}
			if quiet {
				return nil
			}
			_, err = fmt.Fprint(out, s.Host.Dump())
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "bound the script run; defaults to the configured script.timeout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the host tree afterwards")
	return cmd
}
