package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWatcher(t *testing.T) (*Watcher, chan *Outcome) {
	outcomes := make(chan *Outcome, 8)
	w, err := NewWatcher(NewEngine(), zap.NewNop(), func(o *Outcome) { outcomes <- o })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	w.debounce = 0
	return w, outcomes
}

func TestWatcher_HandleFileEvent(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "watch-event-test")
	w, outcomes := newTestWatcher(t)

	bad := writeFile(t, tmpDir, "bad.less", ".a { color: red;")
	w.handleFileEvent(fsnotify.Event{Name: bad, Op: fsnotify.Write})

	require.Len(t, outcomes, 1)
	outcome := <-outcomes
	assert.Equal(t, bad, outcome.Filename)
	assert.Len(t, outcome.Issues, 1)

	// not a stylesheet
	txt := writeFile(t, tmpDir, "notes.txt", "hello")
	w.handleFileEvent(fsnotify.Event{Name: txt, Op: fsnotify.Write})

	// not a write
	w.handleFileEvent(fsnotify.Event{Name: bad, Op: fsnotify.Chmod})
	assert.Empty(t, outcomes)

	w.engine.SetExtensions(".txt")
	w.handleFileEvent(fsnotify.Event{Name: txt, Op: fsnotify.Write})
	require.Len(t, outcomes, 1)
	assert.Equal(t, txt, (<-outcomes).Filename)
}

func TestWatcher_DefaultReport(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "watch-report-test")
	w, err := NewWatcher(NewEngine(), nil, nil)
	require.NoError(t, err)
	defer w.Close()
	w.debounce = 0

	good := writeFile(t, tmpDir, "good.css", "p { margin: 0 }")
	bad := writeFile(t, tmpDir, "bad.css", "p { margin: }")
	assert.NotPanics(t, func() {
		w.handleFileEvent(fsnotify.Event{Name: good, Op: fsnotify.Write})
		w.handleFileEvent(fsnotify.Event{Name: bad, Op: fsnotify.Write})
		w.handleFileEvent(fsnotify.Event{Name: filepath.Join(tmpDir, "gone.css"), Op: fsnotify.Write})
	})
}

func TestWatcher_Start(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "watch-start-test")
	sub := filepath.Join(tmpDir, "styles")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	w, outcomes := newTestWatcher(t)
	require.NoError(t, w.Add(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// give the loop a moment to start before checking the double start
	time.Sleep(50 * time.Millisecond)
	assert.ErrorIs(t, w.Start(ctx), errAlreadyWatching)

	file := filepath.Join(sub, "site.less")
	require.NoError(t, os.WriteFile(file, []byte("@x: 1;"), 0o644))

	select {
	case outcome := <-outcomes:
		assert.Equal(t, file, outcome.Filename)
		assert.Empty(t, outcome.Issues)
	case <-time.After(5 * time.Second):
		t.Fatal("no outcome reported for the written file")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Debounce(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "watch-debounce-test")
	w, outcomes := newTestWatcher(t)
	w.debounce = 50 * time.Millisecond

	a := writeFile(t, tmpDir, "a.less", "@x: 1;")
	b := writeFile(t, tmpDir, "b.less", "@y: 2;")
	w.handleFileEvent(fsnotify.Event{Name: a, Op: fsnotify.Create})
	w.handleFileEvent(fsnotify.Event{Name: a, Op: fsnotify.Write})
	w.handleFileEvent(fsnotify.Event{Name: b, Op: fsnotify.Write})
	w.handleFileEvent(fsnotify.Event{Name: a, Op: fsnotify.Write})
	assert.Empty(t, outcomes)

	seen := make(map[string]int)
	for i := 0; i < 2; i++ {
		select {
		case outcome := <-outcomes:
			seen[outcome.Filename]++
		case <-time.After(5 * time.Second):
			t.Fatal("pending re-check never ran")
		}
	}
	assert.Equal(t, map[string]int{a: 1, b: 1}, seen)

	select {
	case outcome := <-outcomes:
		t.Fatalf("%s was checked more than once", outcome.Filename)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseDropsPending(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "watch-close-test")
	w, outcomes := newTestWatcher(t)
	w.debounce = 50 * time.Millisecond

	file := writeFile(t, tmpDir, "a.less", "@x: 1;")
	w.handleFileEvent(fsnotify.Event{Name: file, Op: fsnotify.Write})
	require.NoError(t, w.Close())

	select {
	case outcome := <-outcomes:
		t.Fatalf("%s was checked after close", outcome.Filename)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_AddMissingDir(t *testing.T) {
	t.Parallel()
	w, _ := newTestWatcher(t)
	assert.Error(t, w.Add(filepath.Join(os.TempDir(), "lessp-does-not-exist")))
}
