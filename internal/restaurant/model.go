package restaurant

import "time"

type Restaurant struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	PriceTier string    `json:"price_tier"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Dishes    []Dish    `json:"dishes"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Dish belongs to exactly one restaurant and is never referenced on its
// own. Position within the restaurant follows insertion order (id ASC).
type Dish struct {
	ID           int     `json:"id"`
	RestaurantID int     `json:"restaurant_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
}
