// Package cli implements the inkwell command line.
package cli

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/docfile"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/logging"
)

// BuildInfo is injected by main.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type globalFlags struct {
	configPath string
	logLevel   string
	width      int
}

type app struct {
	build BuildInfo
	flags globalFlags
	cfg   config.Config
	log   *logging.Logger

	// newScreen opens the terminal for edit.
	newScreen func() (tcell.Screen, error)
}

// NewRootCommand returns the inkwell command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	return newRootCommand(&app{build: build, newScreen: defaultScreen})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "inkwell",
		Short: "Render and edit structured rich-text documents",
		Long: `inkwell renders YAML document fixtures into an in-memory host tree and
replays editing steps against them, runs Lua scripts over them and edits
them interactively in the terminal.`,
		Version:       a.build.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&a.flags.configPath, "config", "c", "",
		"config file (TOML)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides the config file")
	root.PersistentFlags().IntVarP(&a.flags.width, "width", "w", 0,
		"layout width; overrides the document and config width")

	root.AddCommand(
		newRenderCommand(a),
		newReplayCommand(a),
		newWatchCommand(a),
		newScriptCommand(a),
		newEditCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the command line with args.
func Execute(build BuildInfo, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(build)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func (a *app) init(stderr io.Writer) error {
	var opts []config.Option
	if a.flags.configPath != "" {
		opts = append(opts, config.WithFile(a.flags.configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel()
	lc.Output = stderr
	a.log = logging.New(lc)
	return nil
}

func (a *app) open(f *docfile.File) (*docfile.Session, error) {
	width := a.flags.width
	if width <= 0 && f.Width <= 0 {
		width = a.cfg.Layout.Width
	}
	return f.Open(docfile.OpenOptions{
		Width:    width,
		TabWidth: a.cfg.Layout.TabWidth,
		Engine: []engine.Option{
			engine.WithConfig(a.cfg),
			engine.WithLogger(a.log),
		},
	})
}

func (a *app) load(path string) (*docfile.Session, error) {
	f, err := docfile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := a.open(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug("document loaded", "path", path, "fragments", len(s.Doc.Fragments()), "nodes", s.Host.Len())
	return s, nil
}

// String formats the build information.
func (b BuildInfo) String() string {
	v := b.Version
	if v == "" {
		v = "dev"
	}
	if b.Commit == "" && b.Date == "" {
		return v
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, orUnknown(b.Commit), orUnknown(b.Date))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
