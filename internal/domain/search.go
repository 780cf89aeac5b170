package domain

import "time"

// SearchKeyword is one row of a user's search history. UserID is nil for
// anonymous searches.
type SearchKeyword struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"userId,omitempty"`
	Keyword     string    `json:"keyword"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Suggestion is one ranked search-suggestion entry.
type Suggestion struct {
	Keyword     string `json:"keyword"`
	Destination string `json:"destination"`
}
