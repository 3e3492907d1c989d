package search

import "context"

const (
	// StatusSuccess is the only engine status that carries matches.
	// Anything else means "nothing matched", not an error.
	StatusSuccess = "success"

	// DefaultLimit caps the match count when the caller gives none.
	DefaultLimit = 10
)

type Query struct {
	Text        string
	ImagePath   string
	Preferences string
	Limit       int
}

type Match struct {
	RestaurantID string `json:"restaurant_id"`
	DishName     string `json:"dish_name"`
}

type Result struct {
	Status  string  `json:"status"`
	Matches []Match `json:"matches"`
}

// Engine ranks dishes against a free-text or image query. The flat
// record set is an explicit argument on every call; engines hold no
// catalog state between requests.
type Engine interface {
	Search(ctx context.Context, records []Record, q Query) (*Result, error)
}
