package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRepositoryConfig(t *testing.T) {
	cfg, err := Load("../../../config/notifier.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Workers, 1)
	w := cfg.Workers[0]
	assert.Equal(t, "order_notify", w.QueueName)
	assert.Equal(t, 30*time.Second, w.Subscriber.TTR)
	assert.Equal(t, "log", cfg.Mail.Driver)
}

func TestValidate(t *testing.T) {
	write := func(t *testing.T, body string) *Config {
		path := filepath.Join(t.TempDir(), "n.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		cfg, err := Load(path)
		require.NoError(t, err)
		return cfg
	}

	cfg := write(t, "lmstfy:\n  host: x\n")
	assert.ErrorContains(t, cfg.Validate(), "at least one worker")

	cfg = write(t, "lmstfy:\n  host: x\nmail:\n  driver: smtp\nworkers:\n  - name: a\n    queue_name: q\n")
	assert.ErrorContains(t, cfg.Validate(), "smtp")

	cfg = write(t, "lmstfy:\n  host: x\nworkers:\n  - name: a\n    queue_name: q\n")
	assert.ErrorContains(t, cfg.Validate(), "threads")
}
