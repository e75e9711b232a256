package treeio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairoverse/clin/syntax"
)

const geometryYAML = `
id: geometry
path: src/geometry.cairo
source: |
  fn unwrap_radius(shape: Shape) -> felt252 {
      match shape {
          Shape::Circle(radius) => radius,
          _ => 0,
      }
  }
items:
  - id: geometry::unwrap_radius
    name: unwrap_radius
    kind: ItemFreeFunction
    body:
      kind: ExprBlock
      text: "{ match shape { ... } }"
      span:
        start: {offset: 42, line: 1, column: 43}
        end: {offset: 140, line: 6, column: 2}
      children:
        - kind: StatementExpr
          text: "match shape { ... }"
          span:
            start: {offset: 48, line: 2, column: 5}
            end: {offset: 138, line: 5, column: 6}
          children:
            - kind: ExprMatch
              text: "match shape { ... }"
              span:
                start: {offset: 48, line: 2, column: 5}
                end: {offset: 138, line: 5, column: 6}
  - id: geometry::ffi_hash
    name: ffi_hash
    kind: ItemExternFunction
`

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
	}{
		{"src/geometry.cst", FormatBinary},
		{"src/geometry.cst.yaml", FormatYAML},
		{"src/geometry.CST.YML", FormatYAML},
		{"src/geometry.cairo", FormatUnknown},
		{"geometry.yaml", FormatUnknown},
		{"cst", FormatUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatForPath(tt.path))
		})
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "geometry.cst.yaml")
	require.NoError(t, os.WriteFile(path, []byte(geometryYAML), 0o644))

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, syntax.ModuleID("geometry"), m.ID)
	assert.Equal(t, "src/geometry.cairo", m.Path)
	assert.Contains(t, m.Source, "match shape")
	require.Len(t, m.Items, 2)

	fn := m.Items[0]
	assert.Equal(t, syntax.ItemID("geometry::unwrap_radius"), fn.ID)
	assert.Equal(t, syntax.ItemFreeFunction, fn.Kind)
	require.NotNil(t, fn.Body)
	assert.Equal(t, syntax.ExprBlock, fn.Body.Kind())

	// Spans are stamped with the module's source path.
	assert.Equal(t, "src/geometry.cairo", fn.Body.Span().Start.Filename)
	stmt := fn.Body.Children()[0]
	assert.Equal(t, syntax.StatementExpr, stmt.Kind())
	assert.Equal(t, "src/geometry.cairo", stmt.Span().Start.Filename)
	assert.Equal(t, 2, stmt.Span().Start.Line)

	ext := m.Items[1]
	assert.Equal(t, syntax.ItemExternFunction, ext.Kind)
	assert.Nil(t, ext.Body)
}

func TestBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	unit := syntax.NewNode(syntax.ExprTuple, "()", syntax.Span{
		Start: syntax.Position{Offset: 10, Line: 3, Column: 14},
		End:   syntax.Position{Offset: 12, Line: 3, Column: 16},
	})
	body := syntax.NewNode(syntax.ExprBlock, "{ () }", syntax.Span{
		Start: syntax.Position{Offset: 8, Line: 3, Column: 12},
		End:   syntax.Position{Offset: 14, Line: 3, Column: 18},
	}, unit)

	in := &syntax.Module{
		ID:     "demo",
		Path:   "src/demo.cairo",
		Source: "fn noop() { () }\n",
		Items: []syntax.Item{
			{ID: "demo::noop", Name: "noop", Kind: syntax.ItemFreeFunction, Body: body},
		},
	}

	data, err := Encode(in, FormatBinary)
	require.NoError(t, err)

	out, err := Decode(data, FormatBinary)
	require.NoError(t, err)

	assert.Equal(t, in.ID, out.ID)
	require.Len(t, out.Items, 1)
	got := out.Items[0].Body
	require.NotNil(t, got)
	assert.Equal(t, syntax.ExprBlock, got.Kind())
	require.Len(t, got.Children(), 1)
	assert.Equal(t, "()", got.Children()[0].Text())
	assert.Equal(t, 3, got.Children()[0].Span().Start.Line)
	assert.Equal(t, "src/demo.cairo", got.Span().Start.Filename)
}

func TestWriteFileAndLoad(t *testing.T) {
	t.Parallel()

	in := &syntax.Module{ID: "empty", Path: "src/empty.cairo"}
	path := filepath.Join(t.TempDir(), "empty.cst")
	require.NoError(t, WriteFile(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, syntax.ModuleID("empty"), out.ID)
	assert.Empty(t, out.Items, "a dump with no items is valid and lints clean")
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(dir, "geometry.cairo"))
		assert.ErrorContains(t, err, "not a tree dump")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(dir, "missing.cst.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "bad.cst.yaml")
		require.NoError(t, os.WriteFile(path, []byte("items: ["), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "decode yaml")
	})

	t.Run("missing module id", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "noid.cst.yaml")
		require.NoError(t, os.WriteFile(path, []byte("path: a.cairo\n"), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "no id")
	})

	t.Run("missing item id", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "noitemid.cst.yaml")
		dump := "id: m\nitems:\n  - name: f\n    kind: ItemFreeFunction\n"
		require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "has no id")
	})
}

func TestUnknownKindSurvivesLoad(t *testing.T) {
	t.Parallel()

	dump := `
id: m
path: src/m.cairo
items:
  - id: m::f
    name: f
    kind: ItemFreeFunction
    body:
      kind: ExprBlock
      children:
        - kind: ExprLoop
          text: "loop { }"
`
	path := filepath.Join(t.TempDir(), "m.cst.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	body := m.Items[0].Body
	require.Len(t, body.Children(), 1)
	assert.Equal(t, syntax.KindUnknown, body.Children()[0].Kind())
	assert.Equal(t, "loop { }", body.Children()[0].Text())
}
