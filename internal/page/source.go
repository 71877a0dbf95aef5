package page

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
)

// StdinPath makes FileSource read standard input.
const StdinPath = "-"

// FileSource re-reads a saved issue page on every Open, so a page still being
// written is picked up by the next poll. Standard input is read once and
// replayed.
type FileSource struct {
	path  string
	stdin io.Reader

	once    sync.Once
	buffer  []byte
	readErr error
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, stdin: os.Stdin}
}

func (s *FileSource) Name() string {
	if s.path == StdinPath {
		return "stdin"
	}
	return s.path
}

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	if s.path == StdinPath {
		s.once.Do(func() {
			s.buffer, s.readErr = io.ReadAll(s.stdin)
		})
		if s.readErr != nil {
			return nil, domainErrors.ErrReadPage.WithError(s.readErr).WithContext("page", s.Name())
		}
		return io.NopCloser(bytes.NewReader(s.buffer)), nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, domainErrors.ErrReadPage.WithError(err).WithContext("page", s.path)
	}
	return f, nil
}
