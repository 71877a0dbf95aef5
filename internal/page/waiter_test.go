package page

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
)

// scriptedSource serves one page per Open and repeats the last one.
type scriptedSource struct {
	pages []string
	opens int
	err   error
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Open(context.Context) (io.ReadCloser, error) {
	s.opens++
	if s.err != nil {
		return nil, s.err
	}
	i := s.opens - 1
	if i >= len(s.pages) {
		i = len(s.pages) - 1
	}
	return io.NopCloser(strings.NewReader(s.pages[i])), nil
}

const (
	loadingPage = `<p>loading</p>`
	stalePage   = `<a id="key-val" data-issue-key="ABC-1">ABC-1</a>`
	readyPage   = `<a id="key-val" data-issue-key="ABC-2">ABC-2</a>`
)

func fastPolicy(retries uint64) Policy {
	return Policy{Retries: retries, Delay: time.Millisecond}
}

func TestWaiter(t *testing.T) {
	ctx := context.Background()

	t.Run("should return once the page shows the expected ticket", func(t *testing.T) {
		src := &scriptedSource{pages: []string{loadingPage, stalePage, readyPage}}

		doc, err := NewWaiter(fastPolicy(5)).Wait(ctx, src, "/browse/ABC-2")

		require.NoError(t, err)
		assert.True(t, doc.Ready("/browse/ABC-2"))
		assert.Equal(t, 3, src.opens)
	})

	t.Run("should give up after the retry budget", func(t *testing.T) {
		src := &scriptedSource{pages: []string{stalePage}}

		_, err := NewWaiter(fastPolicy(3)).Wait(ctx, src, "/browse/ABC-2")

		assert.True(t, errors.Is(err, domainErrors.ErrPageNotReady))
		assert.Equal(t, 4, src.opens, "one attempt plus three retries")
	})

	t.Run("should surface the last read error", func(t *testing.T) {
		src := &scriptedSource{err: domainErrors.ErrReadPage.WithError(os.ErrNotExist)}

		_, err := NewWaiter(fastPolicy(1)).Wait(ctx, src, "")

		assert.True(t, errors.Is(err, domainErrors.ErrReadPage))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("should try once with no retries", func(t *testing.T) {
		src := &scriptedSource{pages: []string{loadingPage}}

		_, err := NewWaiter(Policy{}).Wait(ctx, src, "")

		assert.Error(t, err)
		assert.Equal(t, 1, src.opens)
	})
}

func TestFileSource(t *testing.T) {
	t.Run("should re-read the file on every open", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "issue.html")
		require.NoError(t, os.WriteFile(path, []byte(loadingPage), 0644))
		src := NewFileSource(path)

		first := readAll(t, src)
		require.NoError(t, os.WriteFile(path, []byte(readyPage), 0644))
		second := readAll(t, src)

		assert.Equal(t, loadingPage, first)
		assert.Equal(t, readyPage, second)
	})

	t.Run("should report a missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.html")).Open(context.Background())
		assert.True(t, errors.Is(err, domainErrors.ErrReadPage))
	})

	t.Run("should replay standard input", func(t *testing.T) {
		src := NewFileSource(StdinPath)
		src.stdin = bytes.NewBufferString(readyPage)

		assert.Equal(t, readyPage, readAll(t, src))
		assert.Equal(t, readyPage, readAll(t, src))
		assert.Equal(t, "stdin", src.Name())
	})
}

func readAll(t *testing.T, src *FileSource) string {
	t.Helper()
	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}
