// Package view holds the client-side screen state: each view owns a listing
// controller, loads its collection through an injected source and reports
// user-facing outcomes through a listing.Notifier.
package view

import "sync/atomic"

// activation tracks whether a view is on screen and which load is current.
// A load stamps itself with a new generation; its result is applied only if no
// newer load started and the view was not deactivated in the meantime.
type activation struct {
	gen    atomic.Uint64
	active atomic.Bool
}

func (a *activation) activate() { a.active.Store(true) }

func (a *activation) deactivate() {
	a.active.Store(false)
	a.gen.Add(1)
}

func (a *activation) begin() uint64 { return a.gen.Add(1) }

func (a *activation) current(gen uint64) bool {
	return a.active.Load() && a.gen.Load() == gen
}
