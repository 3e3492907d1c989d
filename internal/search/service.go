package search

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"

	"zaika/internal/restaurant"
	"zaika/internal/upload"
)

// ErrImageRequired is returned when an image search arrives without an
// image payload. No catalog or engine call happens in that case.
var ErrImageRequired = errors.New("image file is required")

// CatalogReader is the one slice of the restaurant repository the
// search service needs: the full catalog with dishes loaded.
type CatalogReader interface {
	List(ctx context.Context) ([]restaurant.Restaurant, error)
}

type Service struct {
	catalog CatalogReader
	engine  Engine
	staging *upload.Staging
}

func NewService(catalog CatalogReader, engine Engine, staging *upload.Staging) *Service {
	return &Service{
		catalog: catalog,
		engine:  engine,
		staging: staging,
	}
}

// --------------------------------------------------
// Text search
// --------------------------------------------------
func (s *Service) SearchByText(ctx context.Context, query string) ([]restaurant.Restaurant, error) {
	return s.run(ctx, Query{Text: query})
}

// --------------------------------------------------
// Image search (text + image + preferences + limit)
// --------------------------------------------------
func (s *Service) SearchByImage(
	ctx context.Context,
	file multipart.File,
	filename string,
	query string,
	preferences string,
	limit int,
) ([]restaurant.Restaurant, error) {

	if file == nil {
		return nil, ErrImageRequired
	}

	staged, err := s.staging.Stage(file, filename)
	if err != nil {
		return nil, err
	}
	defer staged.Remove()

	return s.run(ctx, Query{
		Text:        query,
		ImagePath:   staged.Path(),
		Preferences: preferences,
		Limit:       limit,
	})
}

// --------------------------------------------------
// One search invocation: project, ask, reconcile
// --------------------------------------------------
func (s *Service) run(ctx context.Context, q Query) ([]restaurant.Restaurant, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Search(ctx, Flatten(catalog), q)
	if err != nil {
		return nil, err
	}

	// A non-success status is "nothing matched", never an error.
	if result == nil || result.Status != StatusSuccess || len(result.Matches) == 0 {
		return []restaurant.Restaurant{}, nil
	}

	return reconcile(catalog, result.Matches), nil
}

type dishKey struct {
	restaurantID string
	dishName     string
}

// reconcile reshapes the engine's flat matches back onto the catalog:
// only matched restaurants survive, each keeping only the dishes whose
// (restaurant, dish name) key matched. Catalog order and per-restaurant
// dish order are preserved; the engine's ranking contributes membership
// only. Matching on the composite key keeps a same-named dish in
// another restaurant out of the result.
func reconcile(catalog []restaurant.Restaurant, matches []Match) []restaurant.Restaurant {
	matchedRestaurants := make(map[string]bool, len(matches))
	matchedDishes := make(map[dishKey]bool, len(matches))
	for _, m := range matches {
		matchedRestaurants[m.RestaurantID] = true
		matchedDishes[dishKey{m.RestaurantID, m.DishName}] = true
	}

	results := make([]restaurant.Restaurant, 0, len(matchedRestaurants))
	for _, r := range catalog {
		id := strconv.Itoa(r.ID)
		if !matchedRestaurants[id] {
			continue
		}

		kept := r
		kept.Dishes = nil
		for _, d := range r.Dishes {
			if matchedDishes[dishKey{id, d.Name}] {
				kept.Dishes = append(kept.Dishes, d)
			}
		}

		results = append(results, kept)
	}

	return results
}
