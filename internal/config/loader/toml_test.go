package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Time{} }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/inkwell.toml", `
[cursor]
target_decay = "2s"
line_search_limit = 500

[layout]
width = 60
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/inkwell.toml").Load()
	require.NoError(t, err)

	cursor, ok := config["cursor"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2s", cursor["target_decay"])
	assert.Equal(t, int64(500), cursor["line_search_limit"])

	width, ok := Lookup(config, "layout.width")
	assert.True(t, ok)
	assert.Equal(t, int64(60), width)
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", "[layout\nwidth = 4\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/invalid.toml").Load()
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/invalid.toml", perr.Path)
	assert.Positive(t, perr.Line)
	assert.Contains(t, perr.Error(), "/invalid.toml at line")
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := (&TOMLLoader{}).LoadFromReader(strings.NewReader(`level = "warn"`))
	require.NoError(t, err)
	assert.Equal(t, "warn", config["level"])
}

func TestTOMLLoader_LoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/etc/inkwell.toml", `
"@include" = ["base.toml", "/shared/log.toml"]

[layout]
width = 40
`)
	memfs.AddFile("/etc/base.toml", `
[layout]
width = 80
tab_width = 8
`)
	memfs.AddFile("/shared/log.toml", `
[log]
level = "debug"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/etc/inkwell.toml").Load()
	require.NoError(t, err)

	_, hasInclude := config["@include"]
	assert.False(t, hasInclude)

	width, _ := Lookup(config, "layout.width")
	assert.Equal(t, int64(40), width)
	tab, _ := Lookup(config, "layout.tab_width")
	assert.Equal(t, int64(8), tab)
	level, _ := Lookup(config, "log.level")
	assert.Equal(t, "debug", level)
}

func TestTOMLLoader_LoadWithIncludes_DepthExceeded(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = "b.toml"`)
	memfs.AddFile("/b.toml", `"@include" = ["c.toml"]`)
	memfs.AddFile("/c.toml", `value = 1`)

	l := NewTOMLLoaderWithFS(memfs, "/a.toml")

	_, err := l.LoadWithIncludes("/a.toml", 2)
	assert.ErrorIs(t, err, ErrIncludeDepthExceeded)

	config, err := l.LoadWithIncludes("/a.toml", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), config["value"])
}

func TestTOMLLoader_BadInclude(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = 3`)

	_, err := NewTOMLLoaderWithFS(memfs, "/a.toml").Load()
	assert.Error(t, err)
}

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name     string
		dst      map[string]any
		src      map[string]any
		expected map[string]any
	}{
		{"nil dst", nil, map[string]any{"a": 1}, map[string]any{"a": 1}},
		{"nil src", map[string]any{"a": 1}, nil, map[string]any{"a": 1}},
		{"src overrides dst", map[string]any{"a": 1}, map[string]any{"a": 2}, map[string]any{"a": 2}},
		{
			"nested merge",
			map[string]any{"layout": map[string]any{"width": 80}},
			map[string]any{"layout": map[string]any{"tab_width": 4}},
			map[string]any{"layout": map[string]any{"width": 80, "tab_width": 4}},
		},
		{
			"map replaces scalar",
			map[string]any{"log": "debug"},
			map[string]any{"log": map[string]any{"level": "info"}},
			map[string]any{"log": map[string]any{"level": "info"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeepMerge(tt.dst, tt.src))
		})
	}
}

func TestClone(t *testing.T) {
	original := map[string]any{
		"string": "value",
		"nested": map[string]any{"deep": "data"},
		"array":  []any{"a", map[string]any{"k": "v"}},
	}

	cloned := Clone(original)

	original["string"] = "changed"
	original["nested"].(map[string]any)["deep"] = "modified"
	original["array"].([]any)[1].(map[string]any)["k"] = "x"

	assert.Equal(t, "value", cloned["string"])
	assert.Equal(t, "data", cloned["nested"].(map[string]any)["deep"])
	assert.Equal(t, "v", cloned["array"].([]any)[1].(map[string]any)["k"])
	assert.Nil(t, Clone(nil))
}
