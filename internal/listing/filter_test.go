package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/skill-swap/internal/types"
)

func filterMembers(members []Member, term, filter string) []Member {
	var out []Member
	for _, m := range members {
		if MatchMember(m, term, filter) {
			out = append(out, m)
		}
	}
	return out
}

func TestMatchMember(t *testing.T) {
	members := sampleMembers()

	tests := []struct {
		name   string
		term   string
		filter string
		want   []string
	}{
		{name: "empty term matches all", term: "", filter: FilterAll, want: []string{"1", "2", "3"}},
		{name: "offered skill case-insensitive", term: "react", filter: FilterAll, want: []string{"1"}},
		{name: "wanted skill", term: "figma", filter: FilterAll, want: []string{"2", "3"}},
		{name: "name substring", term: "THOMP", filter: FilterAll, want: []string{"3"}},
		{name: "no match", term: "rust", filter: FilterAll, want: nil},
		{name: "availability filter", term: "", filter: types.AvailabilityWeekends, want: []string{"1", "2"}},
		{name: "availability case-insensitive", term: "", filter: "FLEXIBLE", want: []string{"2"}},
		{name: "missing availability never matches a category", term: "figma", filter: types.AvailabilityEvenings, want: []string{"2"}},
		{name: "empty filter behaves as all", term: "python", filter: "", want: []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterMembers(members, tt.term, tt.filter)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got, memberID))
		})
	}
}

func TestMatchMemberSearchScenario(t *testing.T) {
	members := []Member{
		{ID: "1", Name: "Sarah Chen", SkillsOffered: []string{"React"}},
		{ID: "2", Name: "Michael Rodriguez", SkillsOffered: []string{"Python"}},
	}

	got := filterMembers(members, "react", FilterAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Sarah Chen", got[0].Name)
}

func TestMatchMemberToleratesMissingFields(t *testing.T) {
	var empty Member
	assert.True(t, MatchMember(empty, "", FilterAll))
	assert.False(t, MatchMember(empty, "x", FilterAll))
	assert.False(t, MatchMember(empty, "", types.AvailabilityWeekdays))
}

func TestMatchRequest(t *testing.T) {
	requests := sampleRequests()

	count := func(filter string) int {
		n := 0
		for _, r := range requests {
			if MatchRequest(r, "ignored search", filter) {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 4, count(FilterAll))
	assert.Equal(t, 2, count(types.RequestPending))
	assert.Equal(t, 1, count(types.RequestAccepted))
	assert.Equal(t, 1, count(types.RequestRejected))
	assert.Equal(t, 0, count("Pending"), "status comparison is exact")
}

func TestFilterIdempotentAndSubset(t *testing.T) {
	members := sampleMembers()
	for _, term := range []string{"", "a", "python", "figma", "zzz"} {
		once := filterMembers(members, term, FilterAll)
		twice := filterMembers(once, term, FilterAll)
		assert.Equal(t, ids(once, memberID), ids(twice, memberID), "term %q", term)

		all := map[string]bool{}
		for _, m := range members {
			all[m.ID] = true
		}
		for _, m := range once {
			assert.True(t, all[m.ID], "term %q produced foreign id %s", term, m.ID)
		}
	}
}
