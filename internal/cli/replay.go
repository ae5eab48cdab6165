package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/docfile"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/differ"
	"github.com/dshills/inkwell/internal/hook"
)

type replayOptions struct {
	full      bool
	keepGoing bool
}

func newReplayCommand(a *app) *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay <document.yaml>",
		Short: "Apply the document steps and diff the host tree after each",
		Long: `Replay the steps listed in a document fixture. After every step the
change to the host tree is printed as a line diff, followed by the
resulting selection.

Examples:
  inkwell replay doc.yaml
  inkwell replay --full doc.yaml
  inkwell replay --keep-going -w 40 doc.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), s, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.full, "full", false, "print unchanged lines too")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "report failing steps and continue")
	return cmd
}

func replay(w io.Writer, s *docfile.Session, opts replayOptions) error {
	var stats differ.Stats
	s.Editor.Hooks().AfterRender.Register(hook.Observer("replay-stats", hook.PrioritySystem,
		func(ev engine.RenderEvent) { stats = stats.Add(ev.Stats) }))

	before := s.Host.Dump()
	for i, step := range s.File.Steps {
		stats = differ.Stats{}
		fmt.Fprintf(w, "== %d: %s\n", i+1, step)
		if err := s.Step(step); err != nil {
			if !opts.keepGoing {
				return fmt.Errorf("step %d (%s): %w", i+1, step, err)
			}
			fmt.Fprintf(w, "!! %v\n", err)
			continue
		}

		after := s.Host.Dump()
		for _, line := range lineDiff(before, after, opts.full) {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintf(w, "-- nodes +%d -%d =%d\n", stats.Created, stats.Destroyed, stats.Reused)
		fmt.Fprintf(w, "-- selection %s\n", describeSelection(s))
		before = after
	}
	return nil
}

// lineDiff returns the changed lines between two dumps prefixed with "- "
// or "+ ". With full, unchanged lines are included with a "  " prefix.
func lineDiff(before, after string, full bool) []string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []string
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if !full {
				continue
			}
			prefix = "  "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, prefix+strings.TrimSuffix(line, "\n"))
		}
	}
	return out
}

func describeSelection(s *docfile.Session) string {
	sel := s.Editor.Selection()
	if sel.IsEmpty() {
		return "none"
	}
	parts := make([]string, 0, sel.Len())
	for _, r := range sel.Ranges() {
		if r.Collapsed() {
			parts = append(parts, s.Name(r.Focus()))
			continue
		}
		parts = append(parts, s.Name(r.Anchor())+".."+s.Name(r.Focus()))
	}
	return strings.Join(parts, ", ")
}
