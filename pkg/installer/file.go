package installer

import (
	"math"
	"sort"
)

// DefaultPriority is the priority of a file entry that does not declare one
const DefaultPriority = math.MinInt

// FileEntry is one installable file or folder
type FileEntry struct {
	Source          string `json:"source" yaml:"source"`
	Destination     string `json:"destination" yaml:"destination"`
	AlwaysInstall   bool   `json:"alwaysInstall,omitempty" yaml:"alwaysInstall,omitempty"`
	InstallIfUsable bool   `json:"installIfUsable,omitempty" yaml:"installIfUsable,omitempty"`
	Priority        int    `json:"priority" yaml:"priority"`
}

// FilePair is one (source, destination) element of a manifest
type FilePair struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

// NewFileEntry builds an entry with the default priority. An empty
// destination defaults to the source.
func NewFileEntry(source, destination string) FileEntry {
	if destination == "" {
		destination = source
	}
	return FileEntry{
		Source:      source,
		Destination: destination,
		Priority:    DefaultPriority,
	}
}

// Slot identifies the install target of an entry; two entries with the
// same slot install the same thing.
func (f FileEntry) Slot() FilePair {
	return FilePair{Source: f.Source, Destination: f.Destination}
}

// MergeFiles appends each entry of src whose slot is not already in dst.
// The first entry for a slot wins, including among the entries of src.
func MergeFiles(dst []FileEntry, src ...FileEntry) []FileEntry {
	seen := make(map[FilePair]bool, len(dst)+len(src))
	for _, f := range dst {
		seen[f.Slot()] = true
	}
	for _, f := range src {
		slot := f.Slot()
		if seen[slot] {
			continue
		}
		seen[slot] = true
		dst = append(dst, f)
	}
	return dst
}

// SortByPriority orders files by ascending priority, keeping insertion
// order among equal priorities. Higher priority sorts last so that it
// overwrites lower priority entries when applied in order.
func SortByPriority(files []FileEntry) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Priority < files[j].Priority
	})
}

// Pairs projects entries to their (source, destination) pairs
func Pairs(files []FileEntry) []FilePair {
	pairs := make([]FilePair, len(files))
	for i, f := range files {
		pairs[i] = f.Slot()
	}
	return pairs
}
