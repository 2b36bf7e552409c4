package client

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
)

// Analyzer is the outbound side of the flow controller.
type Analyzer interface {
	Analyze(ctx context.Context, compoundName string) (*Report, error)
}

// Navigator switches between the two screens of the flow.
type Navigator interface {
	ShowSubmit()
	ShowResult()
}

// Notifier surfaces transient failure messages to the user.
type Notifier interface {
	Notify(message string)
}

// Controller mediates between a submit action, the analysis client and the
// result store. One submission may be in flight at a time; re-entrant
// submits are rejected, not queued.
type Controller struct {
	client   Analyzer
	store    *Store
	nav      Navigator
	notifier Notifier
	busy     atomic.Bool
}

func NewController(client Analyzer, store *Store, nav Navigator, notifier Notifier) *Controller {
	return &Controller{client: client, store: store, nav: nav, notifier: notifier}
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Submit runs one analysis for the compound. Blank input and submissions
// made while busy are no-ops. On success the store is written before the
// navigation to the result view; on failure the store is untouched and the
// message goes to the notifier.
func (c *Controller) Submit(ctx context.Context, compoundName string) {
	if isBlank(compoundName) {
		return
	}
	if !c.busy.CompareAndSwap(false, true) {
		return
	}
	defer c.busy.Store(false)

	report, err := c.client.Analyze(ctx, compoundName)
	if err != nil {
		c.notifier.Notify(notifyMessage(err))
		return
	}

	c.store.Set(report)
	c.nav.ShowResult()
}

// OpenResult navigates to the result view, or back to the submit view when
// nothing has been analyzed yet.
func (c *Controller) OpenResult() {
	if c.store.Get() == nil {
		c.nav.ShowSubmit()
		return
	}
	c.nav.ShowResult()
}

func notifyMessage(err error) string {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return GenericFailureMessage
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
