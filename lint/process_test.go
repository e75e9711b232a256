package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchDump is a module whose single function holds a two-armed
// destructuring match, worth exactly one diagnostic.
const matchDump = `
id: geometry
path: src/geometry.cairo
source: |
  fn unwrap_radius(shape: Shape) -> felt252 {
      match shape {
          Shape::Circle(radius) => { radius; },
          _ => {},
      }
  }
items:
  - id: geometry::unwrap_radius
    name: unwrap_radius
    kind: ItemFreeFunction
    body:
      kind: ExprBlock
      text: "{ ... }"
      span: {start: {offset: 42, line: 1, column: 43}, end: {offset: 160, line: 6, column: 2}}
      children:
        - kind: ExprMatch
          text: "match shape { ... }"
          span: {start: {offset: 48, line: 2, column: 5}, end: {offset: 158, line: 5, column: 6}}
          children:
            - kind: MatchArm
              text: "Shape::Circle(radius) => { radius; }"
              span: {start: {offset: 70, line: 3, column: 9}, end: {offset: 106, line: 3, column: 45}}
              children:
                - kind: PatternEnum
                  text: "Shape::Circle(radius)"
                  span: {start: {offset: 70, line: 3, column: 9}, end: {offset: 91, line: 3, column: 30}}
                  children:
                    - kind: ExprPath
                      text: "Shape::Circle"
                      span: {start: {offset: 70, line: 3, column: 9}, end: {offset: 83, line: 3, column: 22}}
                    - kind: PatternIdentifier
                      text: "radius"
                      span: {start: {offset: 84, line: 3, column: 23}, end: {offset: 90, line: 3, column: 29}}
                - kind: ExprBlock
                  text: "{ radius; }"
                  span: {start: {offset: 95, line: 3, column: 34}, end: {offset: 106, line: 3, column: 45}}
                  children:
                    - kind: ExprPath
                      text: "radius"
                      span: {start: {offset: 97, line: 3, column: 36}, end: {offset: 103, line: 3, column: 42}}
            - kind: MatchArm
              text: "_ => {}"
              span: {start: {offset: 116, line: 4, column: 9}, end: {offset: 123, line: 4, column: 16}}
              children:
                - kind: PatternWildcard
                  text: "_"
                  span: {start: {offset: 116, line: 4, column: 9}, end: {offset: 117, line: 4, column: 10}}
                - kind: ExprBlock
                  text: "{}"
                  span: {start: {offset: 121, line: 4, column: 14}, end: {offset: 123, line: 4, column: 16}}
`

// cleanDump has a function body with nothing to report.
const cleanDump = `
id: util
path: src/util.cairo
source: |
  fn noop() {}
items:
  - id: util::noop
    name: noop
    kind: ItemFreeFunction
    body:
      kind: ExprBlock
      text: "{}"
      span: {start: {offset: 10, line: 1, column: 11}, end: {offset: 12, line: 1, column: 13}}
`

func writeDump(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessPathDirectory(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_dir")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	writeDump(t, tempDir, "geometry.cst.yaml", matchDump)
	writeDump(t, tempDir, "util.cst.yaml", cleanDump)

	engine, err := New("")
	require.NoError(t, err)

	diags, err := ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, "destructuring-match", diags[0].Rule)
	assert.Equal(t, "src/geometry.cairo", diags[0].Filename)
}

// A dump that fails to decode is logged and skipped; the rest of the
// directory is still processed.
func TestProcessPathDirectorySkipsBrokenDump(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_broken")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	writeDump(t, tempDir, "geometry.cst.yaml", matchDump)
	writeDump(t, tempDir, "broken.cst.yaml", "items: [")

	engine, err := New("")
	require.NoError(t, err)

	diags, err := ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, "destructuring-match", diags[0].Rule)
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_single")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := writeDump(t, tempDir, "geometry.cst.yaml", matchDump)

	engine, err := New("")
	require.NoError(t, err)

	diags, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

// For a single file the decode error is propagated instead of being
// swallowed.
func TestProcessPathSingleFileError(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_single_error")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := writeDump(t, tempDir, "broken.cst.yaml", "items: [")

	engine, err := New("")
	require.NoError(t, err)

	_, err = ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	assert.Error(t, err)
}

func TestProcessPathIgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_other")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := writeDump(t, tempDir, "notes.txt", "not a dump")

	engine, err := New("")
	require.NoError(t, err)

	diags, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestProcessPathMissing(t *testing.T) {
	t.Parallel()

	engine, err := New("")
	require.NoError(t, err)

	_, err = ProcessPath(context.Background(), nil, engine, filepath.Join(t.TempDir(), "nope"), ProcessFile)
	assert.Error(t, err)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_cancel")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	for _, name := range []string{"a.cst.yaml", "b.cst.yaml", "c.cst.yaml"} {
		writeDump(t, tempDir, name, cleanDump)
	}

	engine, err := New("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ProcessPath(ctx, nil, engine, tempDir, ProcessFile)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessSourcesContextCancellation(t *testing.T) {
	t.Parallel()

	engine, err := New("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ProcessSources(ctx, nil, engine, [][]byte{[]byte(matchDump)}, ProcessSource)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessSourcesRealEngine(t *testing.T) {
	t.Parallel()

	engine, err := New("")
	require.NoError(t, err)

	sources := [][]byte{[]byte(matchDump), []byte(cleanDump)}
	diags, err := ProcessSources(context.Background(), nil, engine, sources, ProcessSource)
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, "destructuring-match", diags[0].Rule)
}
