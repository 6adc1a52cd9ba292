package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "questions.txt", cfg.QuestionsPath)
	require.Equal(t, DefaultMinCommentLength, cfg.MinCommentLength)
	require.Equal(t, DefaultMaxReplies, cfg.MaxReplies)
	require.Equal(t, []string{"general"}, cfg.Rotation)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: tester
rotation: [general, ponder, ideas]
scan_submolts: [ideas]
start_date: "2024-01-01"
max_replies: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "tester", cfg.Name)
	require.Equal(t, []string{"general", "ponder", "ideas"}, cfg.Rotation)
	require.Equal(t, []string{"ideas"}, cfg.ScanSubmolts)
	require.Equal(t, "2024-01-01", cfg.StartDate)
	require.Equal(t, 5, cfg.MaxReplies)
	// Untouched fields keep their defaults.
	require.Equal(t, DefaultMinCommentLength, cfg.MinCommentLength)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().QuestionsPath, cfg.QuestionsPath)
}

func TestLoadBadYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotation: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MOLTBOOK_AGENT_NAME", "env-agent")
	t.Setenv("MOLTBOOK_START_DATE", "2024-02-01")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "env-agent", cfg.Name)
	require.Equal(t, "2024-02-01", cfg.StartDate)
}
