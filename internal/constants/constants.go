package constants

// Session / context keys
const (
	ContextKeyUserID = "user_id"
	SessionName      = "relief_session"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation limits
const (
	MinPasswordLength = 8
	MinRating         = 1
	MaxRating         = 5
)

// Apply retries once after a concurrent applicant invalidates the
// capacity check mid-transaction.
const ApplyMaxAttempts = 2
