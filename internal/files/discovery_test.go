package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestIsWorkbook(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"season_2023_24.xlsx", true},
		{"scores.XLSM", true},
		{"legacy.xls", true},
		{"~$season_2023_24.xlsx", false},
		{"notes.txt", false},
		{"summary.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorkbook(tt.name))
		})
	}
}

func TestDiscoverWorkbooksDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b_season.xlsx"))
	touch(t, filepath.Join(dir, "a_season.xlsx"))
	touch(t, filepath.Join(dir, "~$a_season.xlsx"))
	touch(t, filepath.Join(dir, "readme.md"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	found, err := DiscoverWorkbooks(dir)
	require.NoError(t, err)
	require.Len(t, found, 2)
	// Sorted by name, lock files and non-workbooks skipped.
	assert.Equal(t, "a_season.xlsx", found[0].Name)
	assert.Equal(t, "b_season.xlsx", found[1].Name)
}

func TestDiscoverWorkbooksSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "season.xlsx")
	touch(t, path)

	found, err := DiscoverWorkbooks(path)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, path, found[0].Path)

	assert.Equal(t, []string{path}, Paths(found))
}

func TestDiscoverWorkbooksErrors(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		_, err := DiscoverWorkbooks(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("non-workbook file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		touch(t, path)
		_, err := DiscoverWorkbooks(path)
		assert.Error(t, err)
	})
}
