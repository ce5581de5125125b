package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stewi1014/gldither/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, pipeline.Settings{Palette: 0, Resolution: 7}, c.Settings())
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gldither.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
palette = 2
resolution = 4
program = "ripple"

[save]
size = 512
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Palette)
	assert.Equal(t, 4, c.Resolution)
	assert.Equal(t, "ripple", c.Program)
	assert.Equal(t, 512, c.Save.Size)
	assert.Equal(t, ".", c.Save.Dir, "unset keys keep defaults")
	assert.Equal(t, 800, c.Window.Width)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gldither.toml")
	require.NoError(t, os.WriteFile(path, []byte("resolution = 10\nprogram = \"nope\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolution 10")
	assert.Contains(t, err.Error(), `unknown program "nope"`)

	require.NoError(t, os.WriteFile(path, []byte("palette = ["), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
