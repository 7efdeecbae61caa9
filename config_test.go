package jyu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec_OverridesPresentKeys(t *testing.T) {
	spec, err := ParseSpec([]byte(`
name = "Viewer"
width = 800
vsync = false

[gl]
minor = 5
`))
	require.NoError(t, err)

	want := DefaultSpec()
	want.Name = "Viewer"
	want.Width = 800
	want.VSync = false
	want.GL.Minor = 5
	assert.Equal(t, want, spec)
}

func TestParseSpec_Empty(t *testing.T) {
	spec, err := ParseSpec(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSpec(), spec)
}

func TestParseSpec_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero width":   "width = 0",
		"neg samples":  "samples = -1",
		"old gl":       "[gl]\nmajor = 3\nminor = 3",
		"gl 4.1":       "[gl]\nminor = 1",
		"negative hgt": "height = -20",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSpec([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestParseSpec_BadTOML(t *testing.T) {
	_, err := ParseSpec([]byte("width = "))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSpec)
}

func TestLoadSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(path, []byte("debug = true\nlog_level = \"debug\"\n"), 0o644))

	spec, err := LoadSpec(path)
	require.NoError(t, err)
	assert.True(t, spec.Debug)
	assert.Equal(t, "debug", spec.LogLevel)

	_, err = LoadSpec(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
