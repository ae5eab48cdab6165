package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCommand(a *app) *cobra.Command {
	var withSteps bool
	cmd := &cobra.Command{
		Use:   "render <document.yaml>",
		Short: "Render a document and print the host tree",
		Long: `Render a document fixture into the in-memory host and print the resulting
tree. With --steps the fixture's steps are applied first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			if withSteps {
				for i, step := range s.File.Steps {
					if err := s.Step(step); err != nil {
						return fmt.Errorf("step %d (%s): %w", i+1, step, err)
					}
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), s.Host.Dump())
			return err
		},
	}
	cmd.Flags().BoolVar(&withSteps, "steps", false, "apply the document steps before printing")
	return cmd
}
