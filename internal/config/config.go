package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dshills/inkwell/internal/config/loader"
	"github.com/dshills/inkwell/internal/logging"
)

// Defaults.
const (
	DefaultLogLevel        = "info"
	DefaultTargetDecay     = 3 * time.Second
	DefaultLineSearchLimit = 10000
	DefaultMaxEntries      = 1000
	DefaultWidth           = 80
	DefaultTabWidth        = 4
	DefaultScriptTimeout   = 5 * time.Second
)

// LogConfig configures logging.
type LogConfig struct {
	Level string
}

// CursorConfig configures caret movement.
type CursorConfig struct {
	// TargetDecay is how long a vertical target column is remembered.
	TargetDecay time.Duration
	// LineSearchLimit bounds the positions scanned per vertical move.
	LineSearchLimit int
}

// HistoryConfig configures undo history.
type HistoryConfig struct {
	MaxEntries int
}

// LayoutConfig configures the in-memory host.
type LayoutConfig struct {
	Width    int
	TabWidth int
}

// ScriptConfig configures Lua scripts.
type ScriptConfig struct {
	// Timeout bounds one script run.
	Timeout time.Duration
}

// Config is the resolved inkwell configuration.
type Config struct {
	Log     LogConfig
	Cursor  CursorConfig
	History HistoryConfig
	Layout  LayoutConfig
	Script  ScriptConfig
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: DefaultLogLevel},
		Cursor:  CursorConfig{TargetDecay: DefaultTargetDecay, LineSearchLimit: DefaultLineSearchLimit},
		History: HistoryConfig{MaxEntries: DefaultMaxEntries},
		Layout:  LayoutConfig{Width: DefaultWidth, TabWidth: DefaultTabWidth},
		Script:  ScriptConfig{Timeout: DefaultScriptTimeout},
	}
}

type options struct {
	path string
	fs   loader.FileSystem
	env  bool
}

// Option configures Load.
type Option func(*options)

// WithFile sets the TOML file to read.
func WithFile(path string) Option {
	return func(o *options) { o.path = path }
}

// WithFS sets the file system used to read the TOML file.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(o *options) { o.env = enable }
}

// Load resolves defaults, the TOML file and the environment, then validates.
func Load(opts ...Option) (Config, error) {
	o := options{fs: loader.DefaultFS(), env: true}
	for _, opt := range opts {
		opt(&o)
	}

	merged := map[string]any{}
	if o.path != "" {
		file, err := loader.NewTOMLLoaderWithFS(o.fs, o.path).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", o.path, err)
		}
		merged = loader.DeepMerge(merged, file)
	}
	if o.env {
		env, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// FromMap applies a merged configuration map over the defaults.
// Unknown keys are ignored.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	var errs []error
	str := func(path string, dst *string) {
		if err := stringAt(m, path, dst); err != nil {
			errs = append(errs, err)
		}
	}
	num := func(path string, dst *int) {
		if err := intAt(m, path, dst); err != nil {
			errs = append(errs, err)
		}
	}

	str("log.level", &cfg.Log.Level)
	if err := durationAt(m, "cursor.target_decay", &cfg.Cursor.TargetDecay); err != nil {
		errs = append(errs, err)
	}
	num("cursor.line_search_limit", &cfg.Cursor.LineSearchLimit)
	num("history.max_entries", &cfg.History.MaxEntries)
	num("layout.width", &cfg.Layout.Width)
	num("layout.tab_width", &cfg.Layout.TabWidth)
	if err := durationAt(m, "script.timeout", &cfg.Script.Timeout); err != nil {
		errs = append(errs, err)
	}

	return cfg, errors.Join(errs...)
}

// Validate rejects non-positive sizes and unknown log levels.
func (c Config) Validate() error {
	var errs []error
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{Path: "log.level", Value: c.Log.Level, Message: "unknown level"})
	}
	positive := []struct {
		path  string
		value int64
	}{
		{"cursor.target_decay", int64(c.Cursor.TargetDecay)},
		{"cursor.line_search_limit", int64(c.Cursor.LineSearchLimit)},
		{"history.max_entries", int64(c.History.MaxEntries)},
		{"layout.width", int64(c.Layout.Width)},
		{"layout.tab_width", int64(c.Layout.TabWidth)},
		{"script.timeout", int64(c.Script.Timeout)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, &ValidationError{Path: p.path, Value: p.value, Message: "must be positive"})
		}
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

func mismatch(path string, v any, want string) error {
	return fmt.Errorf("%w: %s is %T, want %s", ErrTypeMismatch, path, v, want)
}

func stringAt(m map[string]any, path string, dst *string) error {
	v, ok := loader.Lookup(m, path)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return mismatch(path, v, "string")
	}
	*dst = s
	return nil
}

func intAt(m map[string]any, path string, dst *int) error {
	v, ok := loader.Lookup(m, path)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case int64:
		*dst = int(n)
	case int:
		*dst = n
	case float64:
		if n != math.Trunc(n) {
			return mismatch(path, v, "integer")
		}
		*dst = int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return mismatch(path, v, "integer")
		}
		*dst = i
	default:
		return mismatch(path, v, "integer")
	}
	return nil
}

func durationAt(m map[string]any, path string, dst *time.Duration) error {
	v, ok := loader.Lookup(m, path)
	if !ok {
		return nil
	}
	switch d := v.(type) {
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrTypeMismatch, path, err)
		}
		*dst = parsed
	case int64:
		*dst = time.Duration(d) * time.Millisecond
	case time.Duration:
		*dst = d
	default:
		return mismatch(path, v, "duration")
	}
	return nil
}
