package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facewarp/internal/config"
)

func TestMeshCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"mesh"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "facemesh-468/v1")
	assert.Contains(t, out.String(), "triangles:        272")
}

func TestMasksCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"masks", "--mask-dir", t.TempDir()})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "blank"))
	assert.True(t, strings.HasPrefix(lines[2], "lincoln"))
}

func TestSessionOptionsFromConfig(t *testing.T) {
	var cfg config.Config
	cfg.Resolve(config.Flags{Renderer: "anchor"})

	opts, err := sessionOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1280, opts.Width)
	assert.Equal(t, "anchor", string(opts.Renderer))
	assert.True(t, opts.ShowMesh)

	cfg.Interpolation = "sinc"
	_, err = sessionOptions(cfg)
	assert.Error(t, err)
}
