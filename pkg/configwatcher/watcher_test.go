package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mindclass_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	t.Setenv("MINDCLASS_STORAGE_LOCAL_PATH", filepath.Join(dir, "uploads"))
	require.NoError(t, os.WriteFile(file, []byte("ai:\n  model: first\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, file, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("ai:\n  model: second\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "second", cfg.AI.Model)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	assert.NoError(t, <-done)
}
