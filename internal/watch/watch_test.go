package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/st4conv/internal/testutil"
)

func startWatch(t *testing.T, cfg Config) (context.CancelFunc, <-chan error) {
	t.Helper()
	cfg.Logger = testutil.NewTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, cfg) }()
	t.Cleanup(cancel)
	return cancel, done
}

func TestWatchRunsOnStartAndOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.st4")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	var runs atomic.Int32
	cancel, done := startWatch(t, Config{
		Path:       path,
		Debounce:   20 * time.Millisecond,
		RunOnStart: true,
		OnChange: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("v2"), 0o600)
		return runs.Load() >= 2
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.st4")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	var runs atomic.Int32
	cancel, done := startWatch(t, Config{
		Path:     path,
		Debounce: 10 * time.Millisecond,
		OnChange: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.st4"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
	assert.Equal(t, int32(0), runs.Load())
}

func TestWatchRequiresAction(t *testing.T) {
	err := Watch(context.Background(), Config{Path: "x"})
	assert.Error(t, err)
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), Config{
		Path:     filepath.Join(t.TempDir(), "missing", "model.st4"),
		OnChange: func(context.Context) error { return nil },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
