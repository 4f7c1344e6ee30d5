package localstore_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ErlanBelekov/events-client/internal/infrastructure/localstore"
	"github.com/stretchr/testify/require"
)

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	s := localstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"), "token")

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFileStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "creds.json")
	s := localstore.NewFileStore(path, "token")

	require.NoError(t, s.Set(ctx, "tok123"))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Clear(ctx))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFileStore_PreservesOtherSlots(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.json")

	a := localstore.NewFileStore(path, "token")
	b := localstore.NewFileStore(path, "other")

	require.NoError(t, a.Set(ctx, "a-token"))
	require.NoError(t, b.Set(ctx, "b-token"))
	require.NoError(t, a.Clear(ctx))

	got, err := b.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "b-token", got)
}

func TestFileStore_ConcurrentWritersDoNotCollide(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "creds.json")

	// Separate stores share no lock, like two eventsctl processes.
	var wg sync.WaitGroup
	errs := make(chan error, 8*20)
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := localstore.NewFileStore(path, "token")
			for i := range 20 {
				errs <- s.Set(ctx, fmt.Sprintf("tok-%d-%d", w, i))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := localstore.NewFileStore(path, "token").Get(ctx)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "tok-"), "got %q", got)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := localstore.NewFileStore(path, "token").Get(context.Background())
	require.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := localstore.NewMemoryStore()

	require.NoError(t, s.Set(ctx, "tok"))
	got, _ := s.Get(ctx)
	require.Equal(t, "tok", got)

	require.NoError(t, s.Clear(ctx))
	got, _ = s.Get(ctx)
	require.Empty(t, got)
}
