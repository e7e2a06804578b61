package types

// Swap request status values
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Availability categories offered by the member filter
const (
	AvailabilityAll      = "all"
	AvailabilityWeekends = "weekends"
	AvailabilityEvenings = "evenings"
	AvailabilityWeekdays = "weekdays"
	AvailabilityFlexible = "flexible"
)

// User Status values
const (
	UserOnline  = "online"
	UserOffline = "offline"
	UserAway    = "away"
	UserBusy    = "busy"
)

// Limits applied to profile edits and requests
const (
	MaxSkillsPerList = 20
	MaxSkillLength   = 64
	MaxMessageLength = 1000
	MinRating        = 1
	MaxRating        = 5
)

// Valid status values for validation
var ValidRequestStatuses = []string{
	RequestPending, RequestAccepted, RequestRejected,
}

// RequestStatusFilters are the choices of the request listing filter.
var RequestStatusFilters = []string{
	AvailabilityAll, RequestPending, RequestAccepted, RequestRejected,
}

// AvailabilityFilters are the choices of the member listing filter.
var AvailabilityFilters = []string{
	AvailabilityAll, AvailabilityWeekends, AvailabilityEvenings,
	AvailabilityWeekdays, AvailabilityFlexible,
}

// Helper functions for validation
func IsValidRequestStatus(status string) bool {
	for _, s := range ValidRequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsDecision reports whether status is a terminal request state.
func IsDecision(status string) bool {
	return status == RequestAccepted || status == RequestRejected
}
