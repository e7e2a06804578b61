package listing

import "strings"

// Predicate decides whether one record belongs to the filtered set.
type Predicate[T any] func(item T, searchTerm, filterValue string) bool

// MatchMember matches the search term against the member's name and skills and
// the filter value against the free-text availability.
func MatchMember(m Member, searchTerm, filterValue string) bool {
	if searchTerm != "" {
		term := strings.ToLower(searchTerm)
		if !containsFold(m.Name, term) &&
			!anyContainsFold(m.SkillsOffered, term) &&
			!anyContainsFold(m.SkillsWanted, term) {
			return false
		}
	}

	if isAll(filterValue) {
		return true
	}
	if m.Availability == nil {
		return false
	}
	return containsFold(*m.Availability, strings.ToLower(filterValue))
}

// MatchRequest compares the filter value with the request status. Requests
// have no searchable text, so the search term is ignored.
func MatchRequest(r SwapRequest, _ string, filterValue string) bool {
	if isAll(filterValue) {
		return true
	}
	return r.Status == filterValue
}

func isAll(filterValue string) bool {
	return filterValue == "" || filterValue == FilterAll
}

// containsFold expects term to be lower-cased already.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func anyContainsFold(values []string, term string) bool {
	for _, v := range values {
		if containsFold(v, term) {
			return true
		}
	}
	return false
}
