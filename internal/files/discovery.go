package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes a discovered workbook file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// workbookExts are the spreadsheet extensions treated as score workbooks.
var workbookExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
}

// IsWorkbook reports whether name looks like a score workbook. Excel's
// "~$" lock files are excluded.
func IsWorkbook(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}
	return workbookExts[strings.ToLower(filepath.Ext(name))]
}

// DiscoverWorkbooks resolves target to a list of workbooks: a workbook file
// yields itself, a directory yields its workbooks sorted by name.
func DiscoverWorkbooks(target string) ([]FileInfo, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}

	if !info.IsDir() {
		if !IsWorkbook(info.Name()) {
			return nil, fmt.Errorf("%s is not a workbook file", target)
		}
		return []FileInfo{{
			Path:    target,
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", target, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsWorkbook(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, FileInfo{
			Path:    filepath.Join(target, entry.Name()),
			Name:    entry.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})
	return found, nil
}

// Paths extracts the path list from discovered files.
func Paths(files []FileInfo) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
