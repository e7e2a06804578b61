package view

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

// RequestSource is the request source the request screen needs.
type RequestSource interface {
	FetchRequests(ctx context.Context, status string) ([]listing.SwapRequest, error)
	DecideRequest(ctx context.Context, id, status string) (*listing.SwapRequest, error)
}

// RequestsLoad is the outcome of one request fetch.
type RequestsLoad struct {
	gen      uint64
	Requests []listing.SwapRequest
	Err      error
}

// RequestsView is the incoming request screen.
type RequestsView struct {
	Listing *listing.Controller[listing.SwapRequest]

	book     *listing.RequestBook
	source   RequestSource
	notifier listing.Notifier
	logger   *slog.Logger
	state    activation
}

func NewRequestsView(source RequestSource, notifier listing.Notifier, logger *slog.Logger) *RequestsView {
	if notifier == nil {
		notifier = listing.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctrl := listing.NewRequestController()
	v := &RequestsView{
		Listing:  ctrl,
		book:     listing.NewRequestBook(ctrl, notifier),
		source:   source,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "requests_view")),
	}
	v.state.activate()
	return v
}

func (v *RequestsView) Activate()   { v.state.activate() }
func (v *RequestsView) Deactivate() { v.state.deactivate() }

// Fetch loads every incoming request; filtering happens locally.
func (v *RequestsView) Fetch(ctx context.Context) RequestsLoad {
	load := RequestsLoad{gen: v.state.begin()}
	load.Requests, load.Err = v.source.FetchRequests(ctx, listing.FilterAll)
	return load
}

// Apply installs a fetched result unless it is stale or failed.
func (v *RequestsView) Apply(load RequestsLoad) error {
	if !v.state.current(load.gen) {
		v.logger.Debug("stale_requests_load_discarded", slog.Uint64("gen", load.gen))
		return ErrStale
	}
	if load.Err != nil {
		v.logger.Error("requests_fetch_failed", slog.Any("error", load.Err))
		return fmt.Errorf("fetch requests: %w", load.Err)
	}
	v.Listing.SetRaw(load.Requests)
	return nil
}

func (v *RequestsView) Load(ctx context.Context) error {
	return v.Apply(v.Fetch(ctx))
}

// Decide applies a local accept/reject. It reports whether a pending request
// changed; decided and unknown ids are ignored.
func (v *RequestsView) Decide(id, status string) bool {
	return v.book.Decide(id, status)
}

// Persist records a decision that was already applied locally. A failure is
// logged and surfaced as an error notification; the local state stays as is.
func (v *RequestsView) Persist(ctx context.Context, id, status string) error {
	if _, err := v.source.DecideRequest(ctx, id, status); err != nil {
		v.logger.Error("persist_decision_failed",
			slog.String("request_id", id),
			slog.String("status", status),
			slog.Any("error", err),
		)
		v.notifier.Notify("Error", describe(err, "Could not save your decision. Please try again."), listing.SeverityError)
		return err
	}
	return nil
}

// Accept decides locally and persists when the request was still pending.
func (v *RequestsView) Accept(ctx context.Context, id string) error {
	return v.decideAndPersist(ctx, id, types.RequestAccepted)
}

// Reject is the rejecting counterpart of Accept.
func (v *RequestsView) Reject(ctx context.Context, id string) error {
	return v.decideAndPersist(ctx, id, types.RequestRejected)
}

func (v *RequestsView) decideAndPersist(ctx context.Context, id, status string) error {
	if !v.Decide(id, status) {
		return nil
	}
	return v.Persist(ctx, id, status)
}
