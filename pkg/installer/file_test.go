package installer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func entry(src, dst string, priority int) FileEntry {
	f := NewFileEntry(src, dst)
	f.Priority = priority
	return f
}

func TestNewFileEntry(t *testing.T) {
	f := NewFileEntry("textures/a.dds", "")
	assert.Equal(t, "textures/a.dds", f.Destination, "destination defaults to source")
	assert.Equal(t, math.MinInt, f.Priority)

	f = NewFileEntry("2k/a.dds", "textures/a.dds")
	assert.Equal(t, "textures/a.dds", f.Destination)
}

func TestMergeFiles_FirstSlotWins(t *testing.T) {
	first := entry("a", "a", 1)
	dup := entry("a", "a", 9)
	otherDest := entry("a", "b", 0)

	merged := MergeFiles(nil, first, otherDest)
	merged = MergeFiles(merged, dup, entry("c", "c", 0))

	assert.Equal(t, []FileEntry{first, otherDest, entry("c", "c", 0)}, merged)
}

func TestMergeFiles_DeduplicatesWithinSource(t *testing.T) {
	merged := MergeFiles(nil, entry("a", "a", 1), entry("a", "a", 2))
	assert.Equal(t, []FileEntry{entry("a", "a", 1)}, merged)
}

func TestSortByPriority_Stable(t *testing.T) {
	files := []FileEntry{
		entry("high", "high", 10),
		entry("default1", "default1", DefaultPriority),
		entry("zero1", "zero1", 0),
		entry("default2", "default2", DefaultPriority),
		entry("zero2", "zero2", 0),
		entry("neg", "neg", -5),
	}

	SortByPriority(files)

	var order []string
	for _, f := range files {
		order = append(order, f.Source)
	}
	assert.Equal(t, []string{"default1", "default2", "neg", "zero1", "zero2", "high"}, order)
}

func TestPairs(t *testing.T) {
	pairs := Pairs([]FileEntry{entry("a", "x/a", 0), entry("b", "", 0)})
	assert.Equal(t, []FilePair{{Source: "a", Destination: "x/a"}, {Source: "b", Destination: "b"}}, pairs)
}
