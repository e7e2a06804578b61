// Package listing implements the client-side listing engine: record filtering,
// pagination and the per-view controller that ties them together, plus the
// swap request lifecycle applied to listed requests.
package listing

import (
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/types"
)

// FilterAll matches every record regardless of its category.
const FilterAll = types.AvailabilityAll

// Member is a user profile as seen by the listing views.
type Member struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Avatar        *string   `json:"avatar,omitempty"`
	Location      string    `json:"location,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	SkillsOffered []string  `json:"skillsOffered"`
	SkillsWanted  []string  `json:"skillsWanted"`
	Rating        float64   `json:"rating"`
	Availability  *string   `json:"availability,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	TotalSwaps    int       `json:"totalSwaps"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// RequestParty identifies the member who sent a swap request.
type RequestParty struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

// SwapRequest is a proposal to trade one skill for another.
type SwapRequest struct {
	ID             string       `json:"id"`
	FromUser       RequestParty `json:"fromUser"`
	ToUserID       string       `json:"toUserId,omitempty"`
	OfferedSkill   string       `json:"offeredSkill"`
	RequestedSkill string       `json:"requestedSkill"`
	Message        *string      `json:"message,omitempty"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// IsPending reports whether the request still accepts a decision.
func (r SwapRequest) IsPending() bool {
	return r.Status == types.RequestPending
}
