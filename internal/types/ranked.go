// Package types provides type definitions for structured data used throughout the job matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RankedResult is one pool entry with its score, as returned by a recommendation
type RankedResult struct {
	Rank    int        `json:"rank"`
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Company string     `json:"company,omitempty"`
	Score   float64    `json:"score"`
	Match   MatchScore `json:"match"`
	Notes   string     `json:"notes"`
}

// Recommendation is an ordered result list plus an account of how much of the pool was scored
type Recommendation struct {
	Results []RankedResult `json:"results"`
	// PoolSize is the number of entries supplied by the caller
	PoolSize int `json:"pool_size"`
	// Considered is the number of entries admitted after the pool cap
	Considered int `json:"considered"`
	// Scored is the number of entries that produced a score
	Scored int `json:"scored"`
	// Failed is the number of entries whose scoring returned an error
	Failed int `json:"failed"`
	// Complete is false when a pool cap or deadline cut the batch short
	Complete bool   `json:"complete"`
	Reason   string `json:"reason,omitempty"`
}
