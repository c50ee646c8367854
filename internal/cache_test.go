package internal

import (
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tt "github.com/gnolang/lessp/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIssues(filename string) []tt.Issue {
	return []tt.Issue{
		{
			Rule:     SyntaxErrorRule,
			Category: "unexpected",
			Filename: filename,
			Message:  "expected ';', found EOF",
			Note:     "while parsing declaration",
			Start:    token.Position{Filename: filename, Offset: 10, Line: 1, Column: 11},
			End:      token.Position{Filename: filename, Offset: 10, Line: 1, Column: 11},
			Severity: tt.SeverityError,
		},
	}
}

func TestCache(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-test")

	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	t.Run("SaveAndLoad", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "saved.less", "color: red")
		issues := sampleIssues(filename)

		require.NoError(t, cache.Set(filename, issues))

		loaded, found := cache.Get(filename)
		assert.True(t, found)
		assert.Equal(t, issues, loaded)

		// a second cache reads the same gob file
		reopened, err := NewCache(cacheDir)
		require.NoError(t, err)
		fromDisk, found := reopened.Get(filename)
		assert.True(t, found)
		assert.Equal(t, issues, fromDisk)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.less")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "modified.less", "a { }")
		require.NoError(t, cache.Set(filename, nil))

		require.NoError(t, os.WriteFile(filename, []byte("a { color: red; }"), 0o644))

		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("FileRemoved", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "removed.less", "a { }")
		require.NoError(t, cache.Set(filename, nil))
		require.NoError(t, os.Remove(filename))

		_, found := cache.Get(filename)
		assert.False(t, found)
	})
}

func TestCacheMaxAge(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-age-test")
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	filename := writeFile(t, tmpDir, "a.less", "a { }")
	require.NoError(t, cache.Set(filename, nil))

	cache.SetMaxAge(time.Nanosecond)
	time.Sleep(time.Millisecond)
	_, found := cache.Get(filename)
	assert.False(t, found)

	cache.SetMaxAge(0)
	require.NoError(t, cache.Set(filename, nil))
	_, found = cache.Get(filename)
	assert.True(t, found)
}

func TestCacheDependencies(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-dep-test")
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	config := writeFile(t, tmpDir, ".lessp.yaml", "max_depth: 10\n")
	require.NoError(t, cache.SetDependencies(config))

	filename := writeFile(t, tmpDir, "a.less", "a { }")
	require.NoError(t, cache.Set(filename, nil))
	_, found := cache.Get(filename)
	require.True(t, found)

	require.NoError(t, os.WriteFile(config, []byte("max_depth: 2\n"), 0o644))
	_, found = cache.Get(filename)
	assert.False(t, found)

	assert.Error(t, cache.SetDependencies(filepath.Join(tmpDir, "missing.yaml")))
}

func TestCacheInvalidateAll(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-invalidate-test")
	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	for _, name := range []string{"a.less", "b.less"} {
		require.NoError(t, cache.Set(writeFile(t, tmpDir, name, "a { }"), nil))
	}
	assert.Equal(t, 2, cache.Len())

	cache.InvalidateAll()
	assert.Equal(t, 0, cache.Len())

	reopened, err := NewCache(cacheDir)
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestCacheWithEngine(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-engine-test")
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	engine := NewEngine()
	engine.SetCache(cache)

	filename := writeFile(t, tmpDir, "broken.less", "color: red")

	first, err := engine.Run(filename)
	require.NoError(t, err)
	require.Len(t, first.Issues, 1)
	assert.False(t, first.Cached)

	second, err := engine.Run(filename)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Nil(t, second.Stylesheet)
	assert.Equal(t, first.Issues, second.Issues)

	require.NoError(t, os.WriteFile(filename, []byte("color: red;"), 0o644))
	third, err := engine.Run(filename)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Empty(t, third.Issues)
	assert.NotNil(t, third.Stylesheet)
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-concurrency-test")
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	testFile := writeFile(t, tmpDir, "test.less", "a { }")
	issues := sampleIssues(testFile)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.Set(testFile, issues))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(testFile)
		}()
	}
	wg.Wait()

	got, found := cache.Get(testFile)
	assert.True(t, found)
	assert.Equal(t, issues, got)
}
