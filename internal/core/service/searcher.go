package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/admindesk/directory-system/internal/core/ports"
)

// DefaultSearchDebounce matches the dashboard's typing cadence.
const DefaultSearchDebounce = 300 * time.Millisecond

// userFetcher is the slice of the coordinator the searcher needs.
type userFetcher interface {
	FetchUsers(ctx context.Context, q ports.ListQuery) *ports.Page
}

// Searcher rate-limits search-driven fetches at the boundary. Each Trigger
// restarts a debounce timer, and every trigger takes a monotonic sequence
// number: when a fetch completes, its result is delivered only if no newer
// trigger happened meanwhile, so out-of-order completions of superseded
// queries are discarded instead of clobbering fresher state.
type Searcher struct {
	svc      userFetcher
	delay    time.Duration
	onResult func(*ports.Page)

	seq atomic.Uint64

	mu    sync.Mutex
	timer *time.Timer
}

// NewSearcher wires a debounced searcher around svc. onResult receives pages
// from the newest query only; delay <= 0 falls back to the default.
func NewSearcher(svc userFetcher, delay time.Duration, onResult func(*ports.Page)) *Searcher {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Searcher{svc: svc, delay: delay, onResult: onResult}
}

// Trigger schedules a fetch for q after the debounce delay, superseding any
// fetch still pending or in flight.
func (s *Searcher) Trigger(ctx context.Context, q ports.ListQuery) {
	id := s.seq.Add(1)

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		page := s.svc.FetchUsers(ctx, q)
		// A newer trigger arrived while this fetch ran; drop the stale page.
		if s.seq.Load() != id {
			return
		}
		if s.onResult != nil {
			s.onResult(page)
		}
	})
	s.mu.Unlock()
}

// Stop cancels any pending (not yet fired) fetch.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
