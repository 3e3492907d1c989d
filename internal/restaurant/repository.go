package restaurant

import "context"

type Repository interface {
	// core CRUD
	Create(ctx context.Context, r *Restaurant) error
	List(ctx context.Context) ([]Restaurant, error)
	GetByID(ctx context.Context, id int) (*Restaurant, error)
	Update(ctx context.Context, r *Restaurant) error
	Delete(ctx context.Context, id int) error

	// catalog filters
	FilterByName(ctx context.Context, name string) ([]Restaurant, error)
	FilterByPriceTier(ctx context.Context, tier string) ([]Restaurant, error)
	FilterByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]Restaurant, error)

	// images
	SaveImages(ctx context.Context, restaurantID int, urls []string) error
}
