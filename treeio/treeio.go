// Package treeio reads and writes syntax tree dumps, the interchange
// files a Cairo frontend produces for the linter. Two encodings carry
// the same shape: YAML for anything a human edits or reviews, and
// msgpack for the compact dumps a compiler emits in bulk. The
// extension picks the codec: .cst.yaml and .cst.yml decode as YAML,
// .cst as msgpack.
package treeio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/cairoverse/clin/syntax"
)

// Format identifies a dump encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatBinary
)

// Dump file extensions.
const (
	ExtBinary = ".cst"
	ExtYAML   = ".cst.yaml"
	ExtYML    = ".cst.yml"
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatBinary:
		return "binary"
	}
	return "unknown"
}

// FormatForPath returns the encoding implied by a file name, or
// FormatUnknown when the name carries no dump extension.
func FormatForPath(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ExtYAML), strings.HasSuffix(name, ExtYML):
		return FormatYAML
	case strings.HasSuffix(name, ExtBinary):
		return FormatBinary
	}
	return FormatUnknown
}

// Wire types. The dump format is deliberately dumb: plain structs,
// string kinds, no references. A module dump with zero items is valid
// and simply lints clean.

type moduleDump struct {
	ID     string     `yaml:"id" msgpack:"id"`
	Path   string     `yaml:"path,omitempty" msgpack:"path,omitempty"`
	Source string     `yaml:"source,omitempty" msgpack:"source,omitempty"`
	Items  []itemDump `yaml:"items,omitempty" msgpack:"items,omitempty"`
}

type itemDump struct {
	ID   string    `yaml:"id" msgpack:"id"`
	Name string    `yaml:"name" msgpack:"name"`
	Kind string    `yaml:"kind" msgpack:"kind"`
	Body *nodeDump `yaml:"body,omitempty" msgpack:"body,omitempty"`
}

type nodeDump struct {
	Kind     string     `yaml:"kind" msgpack:"kind"`
	Text     string     `yaml:"text,omitempty" msgpack:"text,omitempty"`
	Span     spanDump   `yaml:"span,omitempty" msgpack:"span,omitempty"`
	Children []nodeDump `yaml:"children,omitempty" msgpack:"children,omitempty"`
}

type spanDump struct {
	Start posDump `yaml:"start" msgpack:"start"`
	End   posDump `yaml:"end" msgpack:"end"`
}

type posDump struct {
	Offset int `yaml:"offset" msgpack:"offset"`
	Line   int `yaml:"line" msgpack:"line"`
	Column int `yaml:"column" msgpack:"column"`
}

// Load reads a dump file and returns the module it holds. Node spans
// are stamped with the module's source path so diagnostics point at
// the Cairo file, not at the dump.
func Load(path string) (*syntax.Module, error) {
	format := FormatForPath(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("treeio: %s: not a tree dump (want %s, %s or %s)",
			path, ExtBinary, ExtYAML, ExtYML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("treeio: %w", err)
	}
	m, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("treeio: %s: %w", path, err)
	}
	return m, nil
}

// Decode parses dump bytes in the given encoding.
func Decode(data []byte, format Format) (*syntax.Module, error) {
	var dump moduleDump
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &dump); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatBinary:
		if err := msgpack.Unmarshal(data, &dump); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown dump format")
	}
	return fromWire(&dump)
}

// Encode serializes a module as a dump in the given encoding.
func Encode(m *syntax.Module, format Format) ([]byte, error) {
	dump := toWire(m)
	switch format {
	case FormatYAML:
		return yaml.Marshal(dump)
	case FormatBinary:
		return msgpack.Marshal(dump)
	}
	return nil, fmt.Errorf("unknown dump format")
}

// WriteFile encodes a module and writes it to path, picking the codec
// from the path's extension.
func WriteFile(path string, m *syntax.Module) error {
	format := FormatForPath(path)
	if format == FormatUnknown {
		return fmt.Errorf("treeio: %s: not a tree dump extension", path)
	}
	data, err := Encode(m, format)
	if err != nil {
		return fmt.Errorf("treeio: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("treeio: %w", err)
	}
	return nil
}

func fromWire(dump *moduleDump) (*syntax.Module, error) {
	if dump.ID == "" {
		return nil, fmt.Errorf("module has no id")
	}
	m := &syntax.Module{
		ID:     syntax.ModuleID(dump.ID),
		Path:   dump.Path,
		Source: dump.Source,
		Items:  make([]syntax.Item, 0, len(dump.Items)),
	}
	for i, it := range dump.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d (%q) has no id", i, it.Name)
		}
		item := syntax.Item{
			ID:   syntax.ItemID(it.ID),
			Name: it.Name,
			Kind: syntax.KindFromString(it.Kind),
		}
		if it.Body != nil {
			item.Body = nodeFromWire(it.Body, dump.Path)
		}
		m.Items = append(m.Items, item)
	}
	return m, nil
}

// nodeFromWire rebuilds a node tree, stamping filename into every
// span. Unknown kind labels survive as syntax.KindUnknown so a newer
// frontend's dumps still load; rules simply never match those nodes.
func nodeFromWire(d *nodeDump, filename string) *syntax.Node {
	children := make([]*syntax.Node, len(d.Children))
	for i := range d.Children {
		children[i] = nodeFromWire(&d.Children[i], filename)
	}
	span := syntax.Span{
		Start: syntax.Position{
			Filename: filename,
			Offset:   d.Span.Start.Offset,
			Line:     d.Span.Start.Line,
			Column:   d.Span.Start.Column,
		},
		End: syntax.Position{
			Filename: filename,
			Offset:   d.Span.End.Offset,
			Line:     d.Span.End.Line,
			Column:   d.Span.End.Column,
		},
	}
	return syntax.NewNode(syntax.KindFromString(d.Kind), d.Text, span, children...)
}

func toWire(m *syntax.Module) *moduleDump {
	dump := &moduleDump{
		ID:     string(m.ID),
		Path:   m.Path,
		Source: m.Source,
		Items:  make([]itemDump, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		wireItem := itemDump{
			ID:   string(it.ID),
			Name: it.Name,
			Kind: it.Kind.String(),
		}
		if it.Body != nil {
			wireItem.Body = nodeToWire(it.Body)
		}
		dump.Items = append(dump.Items, wireItem)
	}
	return dump
}

func nodeToWire(n *syntax.Node) *nodeDump {
	d := &nodeDump{
		Kind: n.Kind().String(),
		Text: n.Text(),
		Span: spanDump{
			Start: posDump{
				Offset: n.Span().Start.Offset,
				Line:   n.Span().Start.Line,
				Column: n.Span().Start.Column,
			},
			End: posDump{
				Offset: n.Span().End.Offset,
				Line:   n.Span().End.Line,
				Column: n.Span().End.Column,
			},
		},
	}
	for _, c := range n.Children() {
		d.Children = append(d.Children, *nodeToWire(c))
	}
	return d
}
