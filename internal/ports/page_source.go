package ports

import (
	"context"
	"io"
)

// PageSource yields the current HTML of an issue page. Every call returns a
// fresh snapshot, so a poller can wait for the page to settle.
type PageSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}
