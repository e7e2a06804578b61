package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

// NewRequest is the body of a swap proposal.
type NewRequest struct {
	TargetUserID   string `json:"targetUserId"`
	OfferedSkill   string `json:"offeredSkill"`
	RequestedSkill string `json:"requestedSkill"`
	Message        string `json:"message,omitempty"`
}

// FetchRequests lists the caller's incoming requests. An empty status or "all"
// returns every request.
func (c *Client) FetchRequests(ctx context.Context, status string) ([]listing.SwapRequest, error) {
	var query url.Values
	if status != "" && status != listing.FilterAll {
		query = url.Values{"status": {status}}
	}
	var requests []listing.SwapRequest
	if err := c.do(ctx, http.MethodGet, "/api/requests", query, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// FetchSentRequests lists the caller's outgoing requests.
func (c *Client) FetchSentRequests(ctx context.Context) ([]listing.SwapRequest, error) {
	var requests []listing.SwapRequest
	if err := c.do(ctx, http.MethodGet, "/api/requests/sent", nil, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SendRequest proposes a swap to another member.
func (c *Client) SendRequest(ctx context.Context, req NewRequest) (*listing.SwapRequest, error) {
	var created listing.SwapRequest
	if err := c.do(ctx, http.MethodPost, "/api/requests", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DecideRequest persists an accept or reject decision.
func (c *Client) DecideRequest(ctx context.Context, id, status string) (*listing.SwapRequest, error) {
	var action string
	switch status {
	case types.RequestAccepted:
		action = "accept"
	case types.RequestRejected:
		action = "reject"
	default:
		return nil, fmt.Errorf("unsupported decision %q", status)
	}

	var decided listing.SwapRequest
	path := "/api/requests/" + url.PathEscape(id) + "/" + action
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &decided); err != nil {
		return nil, err
	}
	return &decided, nil
}
