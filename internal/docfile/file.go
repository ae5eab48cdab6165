// Package docfile reads YAML document fixtures: a fragment tree plus an
// optional list of editing steps to replay against it.
package docfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a document fixture.
type File struct {
	// Width is the layout width for the in-memory host. Zero keeps the default.
	Width int `yaml:"width,omitempty"`
	// Root is the root fragment.
	Root Fragment `yaml:"root"`
	// Steps are replayed in order by the replay command.
	Steps []Step `yaml:"steps,omitempty"`
}

// Fragment describes a fragment. Content, when present, replaces Text.
type Fragment struct {
	// Name lets positions refer to the fragment as "name:index".
	Name    string   `yaml:"name,omitempty"`
	Text    string   `yaml:"text,omitempty"`
	Content []Item   `yaml:"content,omitempty"`
	Formats []Format `yaml:"formats,omitempty"`
}

// Item is either a text run or a component.
type Item struct {
	Text      string     `yaml:"text,omitempty"`
	Component *Component `yaml:"component,omitempty"`
}

// Component describes an embedded component.
type Component struct {
	Tag string `yaml:"tag"`
	// Kind is leaf, division, branch or backbone. Empty means leaf, or
	// division when exactly one slot is given.
	Kind  string            `yaml:"kind,omitempty"`
	Void  bool              `yaml:"void,omitempty"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
	Slots []Fragment        `yaml:"slots,omitempty"`
}

// Format is a format range. A missing end means the fragment length.
type Format struct {
	Key       string            `yaml:"key"`
	Start     int               `yaml:"start,omitempty"`
	End       *int              `yaml:"end,omitempty"`
	State     string            `yaml:"state,omitempty"`
	Data      map[string]string `yaml:"data,omitempty"`
	Important bool              `yaml:"important,omitempty"`
}

// Step is one replayed editing operation.
type Step struct {
	// Op is select, add, format, insert, delete, move, undo, redo or checkpoint.
	Op string `yaml:"op"`

	// select, add
	Anchor string `yaml:"anchor,omitempty"`
	Focus  string `yaml:"focus,omitempty"`

	// format
	Key       string            `yaml:"key,omitempty"`
	State     string            `yaml:"state,omitempty"`
	Data      map[string]string `yaml:"data,omitempty"`
	Important bool              `yaml:"important,omitempty"`

	// insert
	Text string `yaml:"text,omitempty"`

	// move: left, right, up or down
	Direction string `yaml:"direction,omitempty"`
	Extend    bool   `yaml:"extend,omitempty"`

	// checkpoint
	Description string `yaml:"description,omitempty"`
}

// Load decodes a fixture from r.
func Load(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &f, nil
}

// LoadFile decodes the fixture at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}
