package search

import (
	"strconv"

	"zaika/internal/restaurant"
)

// Record is one dish flattened with its owning restaurant, in the shape
// the engine consumes. Records are rebuilt on every search and never
// persisted.
type Record struct {
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	DishName       string  `json:"dish_name"`
	DishPrice      float64 `json:"dish_price"`
}

// Flatten projects the catalog into one record per dish. Restaurants
// without dishes contribute nothing, so they can never match.
func Flatten(catalog []restaurant.Restaurant) []Record {
	var records []Record
	for _, r := range catalog {
		for _, d := range r.Dishes {
			records = append(records, Record{
				RestaurantID:   strconv.Itoa(r.ID),
				RestaurantName: r.Name,
				DishName:       d.Name,
				DishPrice:      d.Price,
			})
		}
	}
	return records
}
