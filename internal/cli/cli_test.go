package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/refdocs/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against a source root and docs dir
func run(t *testing.T, root, docs string, args ...string) (string, error) {
	t.Helper()
	checkOnly, jobs, watchSite, configForce = false, 0, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--root", root, "--docs", docs))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGenerateAndCheck(t *testing.T) {
	root, docs := t.TempDir(), t.TempDir()
	source := filepath.Join(root, "bllvm-consensus", "src", "constants.rs")
	writeFile(t, source, "pub const MAX_BLOCK_SIZE: usize = 1_000_000;\n")

	out, err := run(t, root, docs, "generate", "constants")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Generated: "+filepath.Join(docs, "PROTOCOL_CONSTANTS.md"))
	assert.Contains(t, out, "   Extracted 1 constants\n")

	out, err = run(t, root, docs, "generate", "constants", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Up to date: ")

	writeFile(t, source, "pub const MAX_BLOCK_SIZE: usize = 2_000_000;\n")
	out, err = run(t, root, docs, "generate", "constants", "--check")
	assert.ErrorIs(t, err, pipeline.ErrStale)
	assert.Contains(t, out, "✗ Stale: ")
	assert.Contains(t, out, "+| `MAX_BLOCK_SIZE` | `usize` | 2,000,000 |  |")
}

func TestGenerateAll(t *testing.T) {
	root, docs := t.TempDir(), t.TempDir()

	_, err := run(t, root, docs, "generate", "all", "--jobs", "4")
	require.NoError(t, err)
	for _, name := range []string{"PROTOCOL_CONSTANTS.md", "CONFIGURATION_DEFAULTS.md", "ERROR_CODES.md", "RPC_METHODS.md"} {
		assert.FileExists(t, filepath.Join(docs, name))
	}
}

func TestGenerate_UnknownKind(t *testing.T) {
	_, err := run(t, t.TempDir(), t.TempDir(), "generate", "bogus")
	assert.Error(t, err)
}

func TestVersionArchive_Twice(t *testing.T) {
	docs := t.TempDir()
	writeFile(t, filepath.Join(docs, "VERSION"), "2.1.0\n")
	writeFile(t, filepath.Join(docs, "INDEX.md"), "# Index\n")

	out, err := run(t, t.TempDir(), docs, "version", "archive")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Archived v2.1 to ")

	writeFile(t, filepath.Join(docs, "INDEX.md"), "# Changed\n")
	out, err = run(t, t.TempDir(), docs, "version", "archive")
	require.NoError(t, err)
	assert.Contains(t, out, "⚠️  Archive for v2.1 already exists")

	data, err := os.ReadFile(filepath.Join(docs, "archive", "versions", "v2.1", "INDEX.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Index\n", string(data))

	out, err = run(t, t.TempDir(), docs, "version", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Archived versions: 2.1\n")
}

func TestConfigShow(t *testing.T) {
	docs := t.TempDir()
	out, err := run(t, t.TempDir(), docs, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "docs_dir: "+docs)
	assert.Contains(t, out, "output: PROTOCOL_CONSTANTS.md")
}
