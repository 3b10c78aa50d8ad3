package query

import (
	"context"
	"sync"

	"finder/internal/domain"
)

// Key is a key pressed while the query input has focus.
type Key string

// KeyEnter triggers a submission.
const KeyEnter Key = "enter"

// Ticket identifies one submission.
type Ticket struct {
	ID     uint64
	Domain string
}

// Controller owns the query text and the request status.
type Controller struct {
	finder domain.SubdomainFinder

	mu    sync.Mutex
	state State
	seq   uint64
}

// New returns an idle Controller that fetches through finder.
func New(finder domain.SubdomainFinder) *Controller {
	return &Controller{finder: finder}
}

// SetDomain replaces the query text. Nothing is validated.
func (c *Controller) SetDomain(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Domain = s
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// CanSubmit reports whether the submit trigger is live. It is inert while a
// request is outstanding.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Status != StatusLoading
}

// Begin starts a submission of the current query text. It does not check
// CanSubmit; UI triggers go through OnKey.
func (c *Controller) Begin() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.state.Status = StatusLoading
	c.state.Results = nil
	c.state.Message = ""
	c.state.Cause = nil
	return Ticket{ID: c.seq, Domain: c.state.Domain}
}

// Fetch performs the network half of a submission.
func (c *Controller) Fetch(ctx context.Context, t Ticket) ([]string, error) {
	return c.finder.Find(ctx, t.Domain)
}

// Settle applies the outcome of t's fetch and leaves the loading state.
// It returns false, changing nothing, when t is not the latest ticket.
func (c *Controller) Settle(t Ticket, results []string, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.ID != c.seq || c.state.Status != StatusLoading {
		return false
	}
	if err != nil {
		c.state.Status = StatusFailure
		c.state.Results = []string{}
		c.state.Message = FailureMessage
		c.state.Cause = err
		return true
	}
	c.state.Status = StatusSuccess
	c.state.Results = append(make([]string, 0, len(results)), results...)
	return true
}

// Submit runs a whole submission synchronously and returns the settled state.
func (c *Controller) Submit(ctx context.Context) State {
	t := c.Begin()
	results, err := c.Fetch(ctx, t)
	c.Settle(t, results, err)
	return c.State()
}

// OnKey handles a key press on the query input. Enter starts a submission
// unless one is already outstanding; the returned bool reports whether it did.
func (c *Controller) OnKey(k Key) (Ticket, bool) {
	if k != KeyEnter || !c.CanSubmit() {
		return Ticket{}, false
	}
	return c.Begin(), true
}
