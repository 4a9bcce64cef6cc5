package oracle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	paths   map[string]string
	err     error
	delay   time.Duration
	release chan struct{}
	calls   atomic.Int32
}

func (f *fakeLookup) Which(ctx context.Context, word string) (string, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.paths[word], nil
}

func TestCache_Which(t *testing.T) {
	lookup := &fakeLookup{paths: map[string]string{"git": "/usr/bin/git"}}
	cache := NewCache(lookup)
	ctx := context.Background()

	path, ok := cache.Which(ctx, "git")
	assert.True(t, ok)
	assert.Equal(t, "/usr/bin/git", path)

	path, ok = cache.Which(ctx, "gti")
	assert.False(t, ok)
	assert.Equal(t, "", path)

	// Both answers are cached
	cache.Which(ctx, "git")
	cache.Which(ctx, "gti")
	assert.Equal(t, int32(2), lookup.calls.Load())
	assert.Equal(t, 2, cache.Len())
}

func TestCache_Cached(t *testing.T) {
	cache := NewCache(&fakeLookup{paths: map[string]string{"ls": "/bin/ls"}})

	_, ok := cache.Cached("ls")
	assert.False(t, ok, "nothing resolved yet")

	require.True(t, cache.IsCommand(context.Background(), "ls"))

	exists, ok := cache.Cached("ls")
	assert.True(t, ok)
	assert.True(t, exists)

	cache.IsCommand(context.Background(), "nope")
	exists, ok = cache.Cached("nope")
	assert.True(t, ok)
	assert.False(t, exists)
}

func TestCache_FailureIsNotFoundAndNotCached(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("spawn failed")}
	cache := NewCache(lookup)

	assert.False(t, cache.IsCommand(context.Background(), "git"))
	_, ok := cache.Cached("git")
	assert.False(t, ok)

	assert.False(t, cache.IsCommand(context.Background(), "git"))
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestCache_TimeoutIsNotFound(t *testing.T) {
	lookup := &fakeLookup{paths: map[string]string{"slow": "/bin/slow"}, delay: time.Second}
	cache := NewCache(lookup, WithTimeout(10*time.Millisecond))

	start := time.Now()
	assert.False(t, cache.IsCommand(context.Background(), "slow"))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	_, ok := cache.Cached("slow")
	assert.False(t, ok)
}

func TestCache_CallerCancellation(t *testing.T) {
	lookup := &fakeLookup{paths: map[string]string{"git": "/usr/bin/git"}, release: make(chan struct{})}
	cache := NewCache(lookup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, cache.IsCommand(ctx, "git"))

	// The shared lookup still completes and fills the cache
	close(lookup.release)
	assert.Eventually(t, func() bool {
		exists, ok := cache.Cached("git")
		return ok && exists
	}, time.Second, 5*time.Millisecond)
}

func TestCache_CoalescesConcurrentLookups(t *testing.T) {
	lookup := &fakeLookup{paths: map[string]string{"git": "/usr/bin/git"}, release: make(chan struct{})}
	cache := NewCache(lookup)

	var wg sync.WaitGroup
	results := make([]bool, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.IsCommand(context.Background(), "git")
		}(i)
	}

	// Let every goroutine reach the in-flight call before releasing it
	require.Eventually(t, func() bool { return lookup.calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(lookup.release)
	wg.Wait()

	for _, r := range results {
		assert.True(t, r)
	}
	assert.Equal(t, int32(1), lookup.calls.Load())
}

func TestCache_Prime(t *testing.T) {
	lookup := &fakeLookup{}
	cache := NewCache(lookup)

	cache.Prime("git", "/usr/bin/git")
	cache.Prime("gti", "")

	assert.True(t, cache.IsCommand(context.Background(), "git"))
	assert.False(t, cache.IsCommand(context.Background(), "gti"))
	assert.Equal(t, int32(0), lookup.calls.Load())
}

func TestCache_EmptyWordAndNilLookup(t *testing.T) {
	assert.False(t, NewCache(&fakeLookup{}).IsCommand(context.Background(), ""))
	assert.False(t, NewCache(nil).IsCommand(context.Background(), "git"))
}

func writeExecutable(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0755))
}

func TestSystemLookup_Which(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	lookup := NewSystemLookup(dir)
	ctx := context.Background()

	path, err := lookup.Which(ctx, "mytool")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mytool"), path)

	path, err = lookup.Which(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "", path, "non-executable files are not commands")

	path, err = lookup.Which(ctx, "cd")
	require.NoError(t, err)
	assert.Equal(t, BuiltinPath, path)

	path, err = lookup.Which(ctx, filepath.Join(dir, "mytool"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mytool"), path)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = lookup.Which(cancelled, "mytool")
	assert.Error(t, err)
}

func TestSystemLookup_Commands(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeExecutable(t, first, "zeta")
	writeExecutable(t, first, "alpha")
	writeExecutable(t, second, "alpha")
	require.NoError(t, os.Mkdir(filepath.Join(second, "subdir"), 0755))

	lookup := NewSystemLookup(first + string(os.PathListSeparator) + second + string(os.PathListSeparator) + "/does/not/exist")

	names, err := lookup.Commands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestSystemLookup_CommandsAfterCancelledCall(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")
	lookup := NewSystemLookup(dir)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	// The first caller may or may not see the scan finish before giving up
	if names, err := lookup.Commands(cancelled); err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	} else {
		assert.Equal(t, []string{"mytool"}, names)
	}

	names, err := lookup.Commands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mytool"}, names)
}

func TestSystemLookup_RelativePathUsesDir(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "run.sh")
	ctx := context.Background()

	lookup := NewSystemLookup("/does/not/exist", WithDir(dir))
	path, err := lookup.Which(ctx, "./run.sh")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run.sh"), path)

	path, err = NewSystemLookup("/does/not/exist", WithDir(t.TempDir())).Which(ctx, "./run.sh")
	require.NoError(t, err)
	assert.Equal(t, "", path)
}

func TestBuiltins(t *testing.T) {
	assert.True(t, IsBuiltin("cd"))
	assert.True(t, IsBuiltin("export"))
	assert.False(t, IsBuiltin("git"))

	names := Builtins()
	assert.Contains(t, names, "alias")
	assert.IsIncreasing(t, names)
}
