package page

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/logger"
	"github.com/thomas-vilte/branchmate/internal/ports"
)

const (
	DefaultRetries = 20
	DefaultDelay   = 500 * time.Millisecond
)

// Policy bounds the readiness poll: one attempt plus up to Retries more,
// Delay apart.
type Policy struct {
	Retries uint64
	Delay   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Retries: DefaultRetries, Delay: DefaultDelay}
}

var errNotReady = errors.New("key element missing or bound to another ticket")

// Waiter polls a page source until the page shows the expected ticket.
type Waiter struct {
	policy Policy
}

func NewWaiter(policy Policy) *Waiter {
	if policy.Delay <= 0 {
		policy.Delay = time.Millisecond
	}
	return &Waiter{policy: policy}
}

// Wait returns the first ready document. When the budget runs out it returns
// ErrPageNotReady, or the read error of the last attempt.
func (w *Waiter) Wait(ctx context.Context, source ports.PageSource, location string) (*Document, error) {
	log := logger.FromContext(ctx)
	backoff := retry.WithMaxRetries(w.policy.Retries, retry.NewConstant(w.policy.Delay))

	var (
		doc     *Document
		attempt int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		d, err := load(ctx, source)
		if err != nil {
			log.Debug("page not readable yet", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		if !d.Ready(location) {
			log.Debug("page not ready yet", "attempt", attempt, "page", source.Name())
			return retry.RetryableError(errNotReady)
		}
		doc = d
		return nil
	})

	if errors.Is(err, errNotReady) {
		return nil, domainErrors.ErrPageNotReady.
			WithContext("page", source.Name()).
			WithContext("attempts", attempt)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("page ready", "attempt", attempt, "page", source.Name())
	return doc, nil
}

func load(ctx context.Context, source ports.PageSource) (*Document, error) {
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Parse(rc)
}
