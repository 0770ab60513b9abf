package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/mod/fomod/ModuleConfig.xml", []byte("<config/>"), 0644))
	require.NoError(t, mem.MkdirAll("/mod/textures", 0755))

	fsys := filesystem.NewAferoFS(mem)

	t.Run("read file", func(t *testing.T) {
		data, err := fsys.ReadFile("/mod/fomod/ModuleConfig.xml")
		require.NoError(t, err)
		assert.Equal(t, "<config/>", string(data))
	})

	t.Run("read directory as file fails", func(t *testing.T) {
		_, err := fsys.ReadFile("/mod/textures")
		assert.Error(t, err)
	})

	t.Run("read dir", func(t *testing.T) {
		entries, err := fsys.ReadDir("/mod")
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{"fomod", "textures"}, names)
	})

	t.Run("exists", func(t *testing.T) {
		assert.True(t, filesystem.Exists(fsys, "/mod/textures"))
		assert.False(t, filesystem.Exists(fsys, "/mod/meshes"))
	})
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.esp")
	require.NoError(t, os.WriteFile(path, []byte("TES4"), 0644))

	fsys := filesystem.NewOS()

	assert.True(t, filesystem.Exists(fsys, path))
	assert.False(t, filesystem.Exists(fsys, filepath.Join(dir, "missing.esp")))

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TES4", string(data))

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plugin.esp", entries[0].Name())
}
