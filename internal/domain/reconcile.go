package domain

import "time"

// MatchStatus is the triage outcome for one uploaded image.
type MatchStatus string

const (
	// StatusMatched means the top suggestion is safe to auto-accept.
	StatusMatched MatchStatus = "matched"
	// StatusReview means at least one plausible suggestion exists but a
	// human should confirm it.
	StatusReview MatchStatus = "review"
	// StatusUnmatched means no candidate scored high enough to suggest.
	StatusUnmatched MatchStatus = "unmatched"
)

// Suggestion is one ranked candidate product for an uploaded image.
type Suggestion struct {
	Product    Product `json:"product"`
	Score      float64 `json:"score"`
	Confidence string  `json:"confidence"`
	Method     string  `json:"method"`
}

// ImageMatch is the reconcile outcome for a single filename.
type ImageMatch struct {
	Filename    string       `json:"filename"`
	Query       string       `json:"query"`
	Status      MatchStatus  `json:"status"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// ReconcileResult is the outcome of reconciling a batch of uploaded image
// filenames against one tenant's catalog.
type ReconcileResult struct {
	JobID      string       `json:"jobId"`
	TenantID   string       `json:"tenantId"`
	Matched    int          `json:"matched"`
	Review     int          `json:"review"`
	Unmatched  int          `json:"unmatched"`
	Images     []ImageMatch `json:"images"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
}
