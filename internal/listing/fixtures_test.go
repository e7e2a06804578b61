package listing

import (
	"fmt"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleMembers() []Member {
	return []Member{
		{
			ID:            "1",
			Name:          "Sarah Chen",
			SkillsOffered: []string{"React", "TypeScript", "Node.js"},
			SkillsWanted:  []string{"Python", "Data Science"},
			Rating:        4.8,
			Availability:  strPtr("Weekends and weekday evenings after 6 PM"),
		},
		{
			ID:            "2",
			Name:          "Michael Rodriguez",
			SkillsOffered: []string{"Python", "Django", "PostgreSQL"},
			SkillsWanted:  []string{"Frontend Design", "Figma"},
			Rating:        4.5,
			Availability:  strPtr("Evenings weekdays, flexible weekends"),
		},
		{
			ID:            "3",
			Name:          "Emma Thompson",
			SkillsOffered: []string{"Figma", "UX/UI"},
			SkillsWanted:  []string{"CSS"},
			Rating:        4.9,
		},
	}
}

func sampleRequests() []SwapRequest {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return []SwapRequest{
		{ID: "1", FromUser: RequestParty{ID: "2", Name: "Sarah Chen"}, OfferedSkill: "React", RequestedSkill: "Python", Status: types.RequestPending, CreatedAt: created},
		{ID: "2", FromUser: RequestParty{ID: "3", Name: "Michael Rodriguez"}, OfferedSkill: "Python", RequestedSkill: "JavaScript", Status: types.RequestPending, CreatedAt: created.Add(-time.Hour)},
		{ID: "3", FromUser: RequestParty{ID: "4", Name: "Emma Thompson"}, OfferedSkill: "Figma", RequestedSkill: "CSS", Status: types.RequestAccepted, CreatedAt: created.Add(-2 * time.Hour)},
		{ID: "4", FromUser: RequestParty{ID: "5", Name: "David Kim"}, OfferedSkill: "Machine Learning", RequestedSkill: "Web Development", Status: types.RequestRejected, CreatedAt: created.Add(-3 * time.Hour)},
	}
}

func numberedMembers(n int) []Member {
	members := make([]Member, n)
	for i := range members {
		members[i] = Member{ID: fmt.Sprintf("m%02d", i+1), Name: fmt.Sprintf("Member %d", i+1)}
	}
	return members
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

func memberID(m Member) string       { return m.ID }
func requestID(r SwapRequest) string { return r.ID }
