package journal

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// journalExtensions are the file types treated as journal entries.
var journalExtensions = map[string]bool{
	".txt": true,
	".org": true,
	".md":  true,
}

// FileInfo describes one journal file found on disk.
type FileInfo struct {
	Path      string // absolute or dir-relative path as walked
	MTimeUnix int64  // modification time, seconds
	Size      int64
}

// ScanDir walks dir recursively and returns every journal file, sorted by
// path for deterministic processing order. Unreadable entries are skipped
// rather than failing the whole scan; only a failure to walk dir itself is
// an error.
func ScanDir(dir string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			// Skip unreadable subtrees, keep walking.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !journalExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, FileInfo{
			Path:      path,
			MTimeUnix: info.ModTime().Unix(),
			Size:      info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
