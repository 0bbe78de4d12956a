package service

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/admindesk/directory-system/internal/api/metrics"
)

// Defaults used when Show is called with empty strings.
const (
	DefaultConfirmTitle   = "Confirm Action"
	DefaultConfirmMessage = "Are you sure you want to proceed?"
)

// ConfirmationGate decouples "a destructive action was requested" from "the
// action executes". It holds at most one pending request; a newer Show
// silently replaces an unresolved one, discarding the superseded action
// without running it. Multiple concurrent confirmation flows are not
// supported: there is one gate and callers serialize through it.
type ConfirmationGate struct {
	log zerolog.Logger

	mu      sync.Mutex
	visible bool
	title   string
	message string
	action  func()
}

func NewConfirmationGate(log zerolog.Logger) *ConfirmationGate {
	return &ConfirmationGate{
		log:     log,
		title:   DefaultConfirmTitle,
		message: DefaultConfirmMessage,
	}
}

// Show opens a confirmation request holding the deferred action.
func (g *ConfirmationGate) Show(title, message string, action func()) {
	if title == "" {
		title = DefaultConfirmTitle
	}
	if message == "" {
		message = DefaultConfirmMessage
	}

	g.mu.Lock()
	if g.visible && g.action != nil {
		metrics.ConfirmationsTotal.WithLabelValues("replaced").Inc()
		g.log.Debug().Str("title", g.title).Msg("pending confirmation replaced")
	}
	g.title = title
	g.message = message
	g.action = action
	g.visible = true
	g.mu.Unlock()

	g.log.Debug().Str("title", title).Msg("confirmation shown")
}

// Confirm runs the pending action, then hides the gate; the action observes a
// still-visible request, and anything it re-opens is hidden along with it.
// Whatever the action does with its errors is the caller's business. From the
// hidden state Confirm is a no-op and reports false.
func (g *ConfirmationGate) Confirm() bool {
	g.mu.Lock()
	if !g.visible {
		g.mu.Unlock()
		return false
	}
	action := g.action
	g.action = nil
	g.mu.Unlock()

	metrics.ConfirmationsTotal.WithLabelValues("confirmed").Inc()
	if action != nil {
		action()
	}

	g.mu.Lock()
	g.hideLocked()
	g.mu.Unlock()
	return true
}

// Cancel hides the gate without running the action. No-op when hidden.
func (g *ConfirmationGate) Cancel() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.visible {
		return false
	}
	g.hideLocked()
	metrics.ConfirmationsTotal.WithLabelValues("cancelled").Inc()
	g.log.Debug().Msg("confirmation cancelled")
	return true
}

func (g *ConfirmationGate) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visible
}

func (g *ConfirmationGate) Title() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.title
}

func (g *ConfirmationGate) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

func (g *ConfirmationGate) hideLocked() {
	g.visible = false
	g.action = nil
}
