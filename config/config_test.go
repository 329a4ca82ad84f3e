package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.Engine.Provider)
	assert.InDelta(t, 0.7, cfg.Engine.Temperature, 0.001)
	assert.Equal(t, int64(2048), cfg.Engine.MaxTokens)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "socialmesh:jobs", cfg.Redis.Stream)
	assert.Equal(t, time.Hour, cfg.Scheduler.Interval)
	assert.Equal(t, 2*time.Minute, cfg.Scheduler.CallTimeout)
	assert.Equal(t, "social-post", cfg.Scheduler.TemplateID)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Agents)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "socialmesh.yaml")
	data := `
engine:
  provider: openai
  model: gpt-4o-mini
scheduler:
  interval: 30m
agents:
  - domain: crypto
    platforms: [twitter, discord]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Engine.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Engine.Model)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.Interval)
	// Unset keys keep their defaults.
	assert.Equal(t, "social-post", cfg.Scheduler.TemplateID)

	require.Len(t, cfg.Agents, 1)
	assert.Equal(t, "crypto", cfg.Agents[0].Domain)
	assert.Equal(t, []string{"twitter", "discord"}, cfg.Agents[0].Platforms)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
