package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	once   sync.Once
	events chan Event
	errors chan error
}

func newMockSource() *mockSource {
	return &mockSource{events: make(chan Event, 16), errors: make(chan error, 16)}
}

func (m *mockSource) Events() <-chan Event { return m.events }
func (m *mockSource) Errors() <-chan error { return m.errors }

func (m *mockSource) Close() error {
	m.once.Do(func() {
		close(m.events)
		close(m.errors)
	})
	return nil
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "NONE", Op(0).String())
	assert.Equal(t, "WRITE", OpWrite.String())
	assert.Equal(t, "CREATE|RENAME", (OpCreate | OpRename).String())
	assert.True(t, (OpWrite | OpChmod).Has(OpWrite))
	assert.False(t, OpChmod.Changed())
	assert.True(t, (OpRemove | OpCreate).Changed())
}

func TestDebouncerCoalesces(t *testing.T) {
	src := newMockSource()
	d := NewDebouncer(src, time.Hour)
	defer d.Close()

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	src.events <- Event{Path: "/a", Op: OpWrite, Timestamp: now}
	src.events <- Event{Path: "/a", Op: OpChmod, Timestamp: now.Add(time.Second)}
	src.events <- Event{Path: "/b", Op: OpCreate, Timestamp: now}

	require.Eventually(t, func() bool { return d.PendingCount() == 2 }, 5*time.Second, time.Millisecond)

	d.Flush()
	got := map[string]Event{}
	for range 2 {
		ev := receive(t, d.Events())
		got[ev.Path] = ev
	}
	assert.Equal(t, OpWrite|OpChmod, got["/a"].Op)
	assert.Equal(t, now.Add(time.Second), got["/a"].Timestamp)
	assert.Equal(t, OpCreate, got["/b"].Op)
	assert.Zero(t, d.PendingCount())
}

func TestDebouncerDelivers(t *testing.T) {
	src := newMockSource()
	d := NewDebouncer(src, 10*time.Millisecond)
	defer d.Close()

	src.events <- Event{Path: "/a", Op: OpWrite}
	ev := receive(t, d.Events())
	assert.Equal(t, "/a", ev.Path)
}

func TestDebouncerForwardsErrors(t *testing.T) {
	src := newMockSource()
	d := NewDebouncer(src, time.Hour)
	defer d.Close()

	boom := errors.New("boom")
	src.errors <- boom
	select {
	case err := <-d.Errors():
		assert.Equal(t, boom, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestDebouncerClose(t *testing.T) {
	src := newMockSource()
	d := NewDebouncer(src, time.Hour)
	src.events <- Event{Path: "/a", Op: OpWrite}
	require.Eventually(t, func() bool { return d.PendingCount() == 1 }, 5*time.Second, time.Millisecond)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	_, ok := <-d.Events()
	assert.False(t, ok)
	assert.Zero(t, d.PendingCount())
}

func TestRun(t *testing.T) {
	src := newMockSource()
	src.events <- Event{Path: "/a"}
	src.errors <- errors.New("x")
	require.NoError(t, src.Close())

	var events, errs int
	err := Run(context.Background(), src, func(Event) { events++ }, func(error) { errs++ })
	require.NoError(t, err)
	assert.Equal(t, 1, events)
	assert.Equal(t, 1, errs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run(ctx, newMockSource(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileWatcherAddRemove(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))
	assert.ErrorIs(t, w.Add(a), ErrAlreadyWatching)
	assert.ErrorIs(t, w.Add(dir), ErrNotRegularFile)
	assert.ErrorIs(t, w.Add(filepath.Join(dir, "missing")), os.ErrNotExist)
	assert.Equal(t, []string{a, b}, w.Files())
	assert.Equal(t, 2, w.dirs[dir])

	require.NoError(t, w.Remove(a))
	assert.False(t, w.IsWatching(a))
	assert.True(t, w.IsWatching(b))
	assert.ErrorIs(t, w.Remove(a), ErrNotWatching)
	require.NoError(t, w.Remove(b))
	assert.Empty(t, w.dirs)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Add(a), ErrWatcherClosed)
}

func TestFileWatcherReportsWrites(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))
	require.NoError(t, w.Add(path))

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))

	ev := receive(t, w.Events())
	assert.Equal(t, path, ev.Path)
	assert.True(t, ev.Op.Changed(), ev.Op.String())
}

func TestFileWatcherSeesRenameOver(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	tmp := filepath.Join(dir, ".doc.yaml.tmp")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))
	require.NoError(t, w.Add(path))

	require.NoError(t, os.WriteFile(tmp, []byte("two"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	ev := receive(t, w.Events())
	assert.Equal(t, path, ev.Path)
	assert.True(t, ev.Op.Has(OpCreate), ev.Op.String())
}
