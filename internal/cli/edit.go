package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/tui"
)

func newEditCommand(a *app) *cobra.Command {
	var withSteps, dump bool
	cmd := &cobra.Command{
		Use:   "edit <document.yaml>",
		Short: "Edit a document in the terminal",
		Long: `Open a document fixture in an interactive terminal editor.

Keys: arrows move, shift+arrows extend, Ctrl-B bold, Ctrl-T italic,
Ctrl-K code, Ctrl-Z undo, Ctrl-Y redo, Esc or Ctrl-Q quit.`,
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

			screen, err := a.newScreen()
			if err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			screen.EnableMouse()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			err = tui.New(screen, s, tui.WithLogger(a.log)).Run(ctx)
			screen.Fini()
			if err != nil {
				return err
			}
			if dump {
				_, err = fmt.Fprint(cmd.OutOrStdout(), s.Host.Dump())
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&withSteps, "steps", false, "apply the document steps before editing")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the host tree after quitting")
	return cmd
}

func defaultScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}
