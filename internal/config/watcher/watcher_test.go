package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/canvasedit/internal/config"
)

// signal sends without blocking the watcher goroutine.
func signal[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canvasedit.toml")
	writeConfig(t, path, "[history]\nmax_entries = 10\n")

	reload := func() (*config.Config, error) {
		return config.Load(config.WithFile(path), config.WithoutEnv())
	}

	w, err := New(path, reload, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	got := make(chan *config.Config, 4)
	w.OnChange(func(cfg *config.Config) { signal(got, cfg) })

	writeConfig(t, path, "[history]\nmax_entries = 42\n")

	select {
	case cfg := <-got:
		assert.Equal(t, 42, cfg.History.MaxEntries)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canvasedit.yaml")
	writeConfig(t, path, "history:\n  max_entries: 10\n")

	calls := make(chan struct{}, 4)
	reload := func() (*config.Config, error) {
		signal(calls, struct{}{})
		return config.Default(), nil
	}

	w, err := New(path, reload, WithDebounce(0))
	require.NoError(t, err)
	defer w.Close()

	writeConfig(t, filepath.Join(dir, "other.yaml"), "x: 1\n")

	select {
	case <-calls:
		t.Fatal("reload triggered by unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_InvalidConfigKeepsSubscribersQuiet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canvasedit.toml")
	writeConfig(t, path, "[history]\nmax_entries = 10\n")

	attempts := make(chan struct{}, 4)
	reload := func() (*config.Config, error) {
		defer signal(attempts, struct{}{})
		return config.Load(config.WithFile(path), config.WithoutEnv())
	}

	w, err := New(path, reload, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	notified := make(chan struct{}, 4)
	w.OnChange(func(*config.Config) { signal(notified, struct{}{}) })

	writeConfig(t, path, "[history]\nmax_entries = 0\n")

	select {
	case <-attempts:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload attempt")
	}
	select {
	case <-notified:
		t.Fatal("handler called for invalid config")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_Close(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canvasedit.toml")

	w, err := New(path, func() (*config.Config, error) { return config.Default(), nil })
	require.NoError(t, err)

	assert.Equal(t, path, w.Path())
	assert.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrWatcherClosed)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "c.toml"), nil)
	assert.Error(t, err)
}
