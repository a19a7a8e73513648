package domain

import "time"

// RecommendationStatus is the lifecycle state of a persisted recommendation.
type RecommendationStatus string

const (
	RecommendationPending   RecommendationStatus = "PENDING"
	RecommendationAccepted  RecommendationStatus = "ACCEPTED"
	RecommendationDismissed RecommendationStatus = "DISMISSED"
	RecommendationExpired   RecommendationStatus = "EXPIRED"
)

// StrategyRecommendation is a deduplicated, ranked finding persisted for one
// user. Transitions are user-driven (accept/dismiss) or time-driven (expiry).
type StrategyRecommendation struct {
	ID            int64                `json:"id"`
	UserID        string               `json:"user_id"`
	SemanticKey   string               `json:"semantic_key"`
	Finding       StrategyFinding      `json:"finding"`
	Status        RecommendationStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	AcceptedAt    *time.Time           `json:"accepted_at,omitempty"`
	DismissedAt   *time.Time           `json:"dismissed_at,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	DismissReason string               `json:"dismiss_reason,omitempty"`
}

// Open reports whether the recommendation is still awaiting a user decision.
func (r *StrategyRecommendation) Open() bool {
	return r.Status == RecommendationPending
}
