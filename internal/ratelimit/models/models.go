package models

import "time"

// EndpointClass groups endpoints that share a request budget.
type EndpointClass string

const (
	// ClassRead: profile and eligibility reads, program directory
	ClassRead EndpointClass = "read"
	// ClassWrite: profile updates
	ClassWrite EndpointClass = "write"
	// ClassEvaluate: stateless screening and the calculator
	ClassEvaluate EndpointClass = "evaluate"
)

func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassRead, ClassWrite, ClassEvaluate:
		return true
	}
	return false
}

// Limit is a request budget per window.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}
