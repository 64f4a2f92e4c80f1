package domain

import "time"

// Entry is a single indexed filesystem entry
type Entry struct {
	Path     string // absolute path; directories end with "/"
	Name     string // base name without extension for files, full name for folders
	Dir      string // parent directory, always ends with "/"
	Ext      string // ".txt" style extension, or FolderExt for directories
	Size     int64
	ModTime  time.Time
	Extended bool // true when the entry lives in the extended dirs
}

// FolderExt is the pseudo extension used for directories
const FolderExt = "folder"

// IsFolder reports whether the entry is a directory
func (e Entry) IsFolder() bool {
	return e.Ext == FolderExt
}

// Depth returns the number of path separators in the parent dir
func (e Entry) Depth() int {
	n := 0
	for i := 0; i < len(e.Dir); i++ {
		if e.Dir[i] == '/' {
			n++
		}
	}
	return n
}

// IndexProgress represents the current indexing state
type IndexProgress struct {
	IsIndexing bool
	Entries    int
	Roots      []string
}
