package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/watcher"
)

func newWatchCommand(a *app) *cobra.Command {
	var delay time.Duration
	var withSteps bool
	cmd := &cobra.Command{
		Use:   "watch <document.yaml>",
		Short: "Re-render a document whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), args[0], delay, withSteps)
		},
	}
	cmd.Flags().DurationVar(&delay, "debounce", 100*time.Millisecond, "coalesce changes within this window")
	cmd.Flags().BoolVar(&withSteps, "steps", false, "apply the document steps before printing")
	return cmd
}

// watch renders path, then re-renders it after every change until ctx is
// done. Load errors are logged and the previous output stands.
func (a *app) watch(ctx context.Context, out io.Writer, path string, delay time.Duration, withSteps bool) error {
	fw, err := watcher.New()
	if err != nil {
		return err
	}
	if err := fw.Add(path); err != nil {
		_ = fw.Close()
		return err
	}
	src := watcher.NewDebouncer(fw, delay)
	defer src.Close()

	log := a.log.WithComponent("watch").WithField("path", path)
	generation := 0
	render := func() {
		s, err := a.load(path)
		if err == nil && withSteps {
			for i, step := range s.File.Steps {
				if err = s.Step(step); err != nil {
					err = fmt.Errorf("step %d (%s): %w", i+1, step, err)
					break
				}
			}
		}
		if err != nil {
			log.Error("render failed", "err", err)
			return
		}
		generation++
		fmt.Fprintf(out, "== render %d\n%s", generation, s.Host.Dump())
	}

	render()
	err = watcher.Run(ctx, src,
		func(ev watcher.Event) {
			log.Debug("change", "op", ev.Op)
			if ev.Op.Changed() {
				render()
			}
		},
		func(err error) { log.Warn("watcher error", "err", err) },
	)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
