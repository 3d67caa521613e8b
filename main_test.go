package main

import (
	"bytes"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagestrip/internal/config"
	"pagestrip/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWindowCommand(t *testing.T) {
	out, err := execute(t, "window", "4", "10", "7")
	require.NoError(t, err)
	assert.Equal(t, " <<   <   4   5   6   >   >> \n", out)

	out, err = execute(t, "window", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, " 1 \n", out)
}

func TestWindowCommandRejectsInput(t *testing.T) {
	_, err := execute(t, "window", "abc", "10")
	assert.ErrorIs(t, err, domain.ErrInvalidPageInput)

	_, err = execute(t, "window", "1")
	assert.Error(t, err)
}

func TestInitConfigAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagestrip", "config.toml")

	out, err := execute(t, "init-config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--pages", "3", "--log-level", "debug"}))

	f := &flags{configPath: path, pages: 3, logLevel: "debug"}
	cfg, err := loadConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pagination.TotalPages)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.DefaultConfig().Pagination.WindowSize, cfg.Pagination.WindowSize)
}

func TestWire(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pagination.TotalPages = 4

	model, controller, err := wire(cfg, zerolog.Nop())
	require.NoError(t, err)

	capacity, ok := controller.Bus().Capacity()
	require.True(t, ok)
	assert.Equal(t, cfg.Pagination.Capacity, capacity)
	assert.Equal(t, 2, controller.Bus().Count(domain.EventNavigate))

	model.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 4, controller.CurrentPage())
	assert.Contains(t, model.View(), "Item 040")
}

func TestWireWithSingleSubscriber(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pagination.Capacity = 1
	require.Error(t, cfg.Validate())

	// Even past validation, a full bus costs the status line and nothing else
	model, controller, err := wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, controller.Bus().Count(domain.EventNavigate))
	assert.Contains(t, model.View(), "subscriber capacity reached")

	model.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 10, controller.CurrentPage())
	assert.Contains(t, model.View(), "Item 100")
}

func TestLoadConfigRejectsOverflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := execute(t, "init-config", "--config", path)
	require.NoError(t, err)

	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--pages", "4611686018427387904"}))

	_, err = loadConfig(cmd, &flags{configPath: path, pages: 1 << 62})
	assert.ErrorContains(t, err, "overflow")
}
