package devlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/devlog/content"
)

func newTestLibrary(t *testing.T, files map[string]string) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, files)
	return NewLibrary(content.NewLoader(dir, content.SchemaDate), discardLogger()), dir
}

func TestLibraryStartsEmpty(t *testing.T) {
	lib, _ := newTestLibrary(t, nil)
	snap := lib.Snapshot()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Documents)
	_, ok := snap.Document("/blogs/anything")
	assert.False(t, ok)
}

func TestLibraryLoad(t *testing.T) {
	lib, _ := newTestLibrary(t, testPosts)
	require.NoError(t, lib.Load(context.Background()))

	snap := lib.Snapshot()
	assert.Len(t, snap.Documents, len(testPosts))
	assert.False(t, snap.LoadedAt.IsZero())

	doc, ok := snap.Document("/blogs/go/channels")
	require.True(t, ok)
	assert.Equal(t, "Go Channels", doc.Title)
}

func TestLibraryReloadFailureKeepsSnapshot(t *testing.T) {
	lib, dir := newTestLibrary(t, testPosts)
	require.NoError(t, lib.Load(context.Background()))
	before := lib.Snapshot()

	writeFiles(t, dir, map[string]string{"bad.md": "---\ntitle: Bad\ndate: someday\n---\n"})
	err := lib.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, content.ErrInvalidDate)
	assert.Same(t, before, lib.Snapshot())
}

func TestLibrarySnapshotIsolation(t *testing.T) {
	lib, dir := newTestLibrary(t, testPosts)
	require.NoError(t, lib.Load(context.Background()))
	held := lib.Snapshot()

	require.NoError(t, os.Remove(filepath.Join(dir, "old.md")))
	require.NoError(t, lib.Load(context.Background()))

	assert.Len(t, held.Documents, len(testPosts))
	assert.Len(t, lib.Snapshot().Documents, len(testPosts)-1)
}

func TestLibraryWatch(t *testing.T) {
	lib, dir := newTestLibrary(t, testPosts)
	require.NoError(t, lib.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lib.Watch(ctx, 20*time.Millisecond) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register the tree.
	time.Sleep(100 * time.Millisecond)
	writeFiles(t, dir, map[string]string{
		"go/select.md": "---\ntitle: Select\ndate: 2024-05-01\n---\nbody\n",
	})

	require.Eventually(t, func() bool {
		_, ok := lib.Snapshot().Document("/blogs/go/select")
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}
