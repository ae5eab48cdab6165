package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inkwell/internal/docfile"
	"github.com/dshills/inkwell/internal/logging"
)

// DefaultTimeout bounds one script run.
const DefaultTimeout = 5 * time.Second

// Runner executes Lua scripts against one session.
//
// A Runner is not safe for concurrent use; runs are serialized.
type Runner struct {
	L       *lua.LState
	session *docfile.Session
	out     io.Writer
	log     *logging.Logger
	timeout time.Duration

	mu        sync.Mutex
	closed    bool
	listeners []listener
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where print writes.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the logger used by ink.log and for listener failures.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithTimeout bounds each run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// New creates a sandboxed runner for s.
func New(s *docfile.Session, opts ...Option) *Runner {
	r := &Runner{
		session: s,
		out:     io.Discard,
		log:     logging.Discard(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("script")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	r.L = L
	r.installPrint()
	r.register()
	return r
}

// openSafeLibraries opens the libraries that cannot reach the host system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (r *Runner) installPrint() {
	r.L.SetGlobal("print", r.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(r.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// Run executes code. name labels errors.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	start := time.Now()
	err := r.doWithRecovery(func() error {
		fn, err := r.L.LoadString(code)
		if err != nil {
			return err
		}
		r.L.Push(fn)
		return r.L.PCall(0, lua.MultRet, nil)
	})
	r.L.SetTop(0)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("running %s: %w", name, ctxErr)
		}
		return fmt.Errorf("running %s: %w: %v", name, ErrScript, err)
	}
	r.log.Debug("script finished", "name", name, "elapsed", time.Since(start))
	return nil
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(code))
}

// doWithRecovery executes fn with panic recovery.
func (r *Runner) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()
	return fn()
}

// Close removes the script's listeners and releases the Lua state.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	for _, l := range r.listeners {
		l.unregister()
	}
	r.listeners = nil
	r.L.Close()
	r.closed = true
	return nil
}
