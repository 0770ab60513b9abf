package filesystem

import (
	"io/fs"
)

// FS is the read-only filesystem abstraction used across modwiz
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Exists reports whether name can be stat'ed. Any error counts as absent.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
