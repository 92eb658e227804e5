package discovery

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrScopeClosed is returned when a view's scope closed before its batch
// finished. Whatever the batch fetched is discarded.
var ErrScopeClosed = errors.New("view scope closed")

// Scope is the lifetime of one page view. Closing it cancels every provider
// call still in flight for that view.
type Scope struct {
	id      string
	ctx     context.Context
	cancel  context.CancelFunc
	closed  atomic.Bool
	started time.Time
}

// NewScope derives a scope from parent, usually the request context, so a
// client disconnect also closes the view.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{
		id:      uuid.NewString(),
		ctx:     ctx,
		cancel:  cancel,
		started: time.Now(),
	}
}

func (s *Scope) ID() string {
	return s.id
}

func (s *Scope) Context() context.Context {
	return s.ctx
}

// Close is idempotent.
func (s *Scope) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.cancel()
	}
}

// Active reports whether results may still be delivered to the view.
func (s *Scope) Active() bool {
	return !s.closed.Load() && s.ctx.Err() == nil
}

func (s *Scope) Elapsed() time.Duration {
	return time.Since(s.started)
}
