package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/codewatch/internal/exclude"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFiles_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "b.ts"), "let x = 1;\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "hello\n")

	records, warnings := Files([]string{dir}, []string{".py"}, exclude.Default())

	assert.Empty(t, warnings)
	require.Len(t, records, 1)
	assert.Equal(t, "a.py", records[0].RelPath)
	assert.Equal(t, "python", records[0].Language)
	assert.Equal(t, int64(6), records[0].SizeBytes)
}

func TestFiles_ExcludedDirectoryPrunesSubtree(t *testing.T) {
	dir := t.TempDir()
	// 50 Python files under a version-control directory never surface,
	// whatever the requested extensions.
	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(dir, ".git", "objects", fmt.Sprintf("f%d.py", i)), "x = 1\n")
	}
	writeFile(t, filepath.Join(dir, "keep.py"), "x = 1\n")

	records, warnings := Files([]string{dir}, []string{".py"}, exclude.Default())

	assert.Empty(t, warnings)
	require.Len(t, records, 1)
	assert.Equal(t, "keep.py", records[0].RelPath)
}

func TestFiles_ExcludedFilePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.min.js"), "var a=1;\n")
	writeFile(t, filepath.Join(dir, "app.js"), "var a = 1;\n")

	records, _ := Files([]string{dir}, []string{".js"}, exclude.Default())

	require.Len(t, records, 1)
	assert.Equal(t, "app.js", records[0].RelPath)
}

func TestFiles_MissingRootWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "x = 1\n")

	records, warnings := Files([]string{filepath.Join(dir, "nope"), dir}, []string{".py"}, exclude.Default())

	require.Len(t, warnings, 1)
	assert.Equal(t, "path_not_found", warnings[0].Kind)
	assert.Len(t, records, 1)
}

func TestFiles_SymlinksNotFollowed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "real", "a.py"), "x = 1\n")
	link := filepath.Join(dir, "loop.py")
	if err := os.Symlink(filepath.Join(dir, "real", "a.py"), link); err != nil {
		t.Skip("symlinks unsupported on this filesystem")
	}

	records, _ := Files([]string{dir}, []string{".py"}, exclude.Default())

	require.Len(t, records, 1)
	assert.Equal(t, "real/a.py", records[0].RelPath)
}

func TestFiles_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "single.py")
	writeFile(t, target, "x = 1\n")

	records, warnings := Files([]string{target}, []string{".py"}, exclude.Default())

	assert.Empty(t, warnings)
	require.Len(t, records, 1)
	assert.Equal(t, target, records[0].Path)
}
