package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch_NotifiesOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\n"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	require.NoError(t, Watch(ctx, path, func() { changed <- struct{}{} }))

	require.NoError(t, os.WriteFile(path, []byte("[server]\nlatency_ms = 10\n"), 0600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	require.NoError(t, Watch(ctx, path, func() { changed <- struct{}{} }))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "other.toml"), []byte("x = 1\n"), 0600))

	select {
	case <-changed:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent/dir/config.toml", func() {})

	require.Error(t, err)
}
