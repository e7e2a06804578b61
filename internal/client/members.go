package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
)

// ProfileUpdate carries a partial edit of the caller's own profile. Nil fields
// and nil skill lists (sent as null) are left untouched by the server; an empty
// skill list clears it.
type ProfileUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Avatar        *string  `json:"avatar,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Bio           *string  `json:"bio,omitempty"`
	Availability  *string  `json:"availability,omitempty"`
	IsPublic      *bool    `json:"isPublic,omitempty"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
}

// FetchMembers lists the public members other than the caller.
func (c *Client) FetchMembers(ctx context.Context) ([]listing.Member, error) {
	var members []listing.Member
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// FetchMember loads one member's public profile.
func (c *Client) FetchMember(ctx context.Context, id string) (*listing.Member, error) {
	var member listing.Member
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// FetchProfile loads the caller's own profile.
func (c *Client) FetchProfile(ctx context.Context) (*listing.Member, error) {
	var member listing.Member
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateProfile saves a partial profile edit and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*listing.Member, error) {
	var member listing.Member
	if err := c.do(ctx, http.MethodPut, "/api/profile", nil, update, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// RateMember scores a member after a completed swap.
func (c *Client) RateMember(ctx context.Context, id string, score int) (*listing.Member, error) {
	var member listing.Member
	body := map[string]int{"score": score}
	if err := c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(id)+"/rating", nil, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}
