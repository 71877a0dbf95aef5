package clipboard

import (
	"github.com/atotto/clipboard"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
)

// System writes to the desktop clipboard.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) Copy(text string) error {
	if clipboard.Unsupported {
		return domainErrors.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return domainErrors.ErrClipboardUnavailable.WithError(err)
	}
	return nil
}
