package listing

import (
	"slices"

	"github.com/Marga-Ghale/skill-swap/internal/types"
)

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier receives user-facing notifications. Calls are fire-and-forget.
type Notifier interface {
	Notify(title, description string, severity Severity)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, description string, severity Severity)

func (f NotifierFunc) Notify(title, description string, severity Severity) {
	f(title, description, severity)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(string, string, Severity) {})

// Accept moves the pending request with the given id to accepted. It returns a
// new collection and true when exactly that record changed; otherwise it
// returns the input unchanged and false.
func Accept(requests []SwapRequest, id string) ([]SwapRequest, bool) {
	return transition(requests, id, types.RequestAccepted)
}

// Reject is the rejecting counterpart of Accept.
func Reject(requests []SwapRequest, id string) ([]SwapRequest, bool) {
	return transition(requests, id, types.RequestRejected)
}

func transition(requests []SwapRequest, id, to string) ([]SwapRequest, bool) {
	idx := slices.IndexFunc(requests, func(r SwapRequest) bool { return r.ID == id })
	if idx < 0 || !requests[idx].IsPending() {
		return requests, false
	}

	next := slices.Clone(requests)
	next[idx].Status = to
	return next, true
}

// RequestBook applies request decisions to the raw collection of a request
// controller and reports each successful decision once.
type RequestBook struct {
	listing  *Controller[SwapRequest]
	notifier Notifier
}

func NewRequestBook(listing *Controller[SwapRequest], notifier Notifier) *RequestBook {
	if notifier == nil {
		notifier = Discard
	}
	return &RequestBook{listing: listing, notifier: notifier}
}

// Accept accepts a pending request. Decided or unknown ids are ignored.
func (b *RequestBook) Accept(id string) bool {
	next, ok := Accept(b.listing.raw, id)
	if !ok {
		return false
	}
	b.listing.SetRaw(next)
	b.notifier.Notify("Request Accepted", "You have accepted the skill swap request.", SeverityInfo)
	return true
}

// Reject rejects a pending request. Decided or unknown ids are ignored.
func (b *RequestBook) Reject(id string) bool {
	next, ok := Reject(b.listing.raw, id)
	if !ok {
		return false
	}
	b.listing.SetRaw(next)
	b.notifier.Notify("Request Rejected", "You have rejected the skill swap request.", SeverityInfo)
	return true
}

// Decide dispatches to Accept or Reject by target status.
func (b *RequestBook) Decide(id, status string) bool {
	switch status {
	case types.RequestAccepted:
		return b.Accept(id)
	case types.RequestRejected:
		return b.Reject(id)
	default:
		return false
	}
}
