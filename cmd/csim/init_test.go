package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInitCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestInitCreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csim.toml")

	out, err := runInitCommand(t, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created")

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[analysis]")
	assert.Contains(t, string(content), "[scan]")
	assert.Contains(t, string(content), "[output]")
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csim.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("# existing"), 0644))

	_, err := runInitCommand(t, "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// Untouched
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "# existing", string(content))
}

func TestInitForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csim.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("# existing"), 0644))

	_, err := runInitCommand(t, "--config", configPath, "--force")
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[analysis]")
}
