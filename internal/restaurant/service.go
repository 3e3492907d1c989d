package restaurant

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage persists restaurant images and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (s *Service) CreateRestaurant(ctx context.Context, restaurant *Restaurant) (*Restaurant, error) {
	if err := validate(restaurant); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------
func (s *Service) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetRestaurant(ctx context.Context, id int) (*Restaurant, error) {
	return s.repo.GetByID(ctx, id)
}

// --------------------------------------------------
// Update restaurant (replaces the dish list)
// --------------------------------------------------
func (s *Service) UpdateRestaurant(ctx context.Context, restaurant *Restaurant) (*Restaurant, error) {
	if err := validate(restaurant); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// --------------------------------------------------
// Delete restaurant
// --------------------------------------------------
func (s *Service) DeleteRestaurant(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// --------------------------------------------------
// Catalog filters
// --------------------------------------------------
func (s *Service) FilterByName(ctx context.Context, name string) ([]Restaurant, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	return s.repo.FilterByName(ctx, name)
}

func (s *Service) FilterByPriceTier(ctx context.Context, tier string) ([]Restaurant, error) {
	if tier == "" {
		return nil, errors.New("price tier is required")
	}
	return s.repo.FilterByPriceTier(ctx, tier)
}

func (s *Service) FilterByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]Restaurant, error) {
	if radiusKm <= 0 {
		radiusKm = 1
	}
	return s.repo.FilterByRadius(ctx, lat, lng, radiusKm)
}

// --------------------------------------------------
// Upload restaurant images to object storage
// --------------------------------------------------
func (s *Service) UploadImages(
	ctx context.Context,
	restaurantID int,
	files []*multipart.FileHeader,
) ([]string, error) {

	if len(files) == 0 {
		return nil, errors.New("images are required")
	}

	if _, err := s.repo.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	var urls []string
	for _, header := range files {
		url, err := s.uploadOne(ctx, restaurantID, header)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	if err := s.repo.SaveImages(ctx, restaurantID, urls); err != nil {
		return nil, err
	}

	return urls, nil
}

func (s *Service) uploadOne(
	ctx context.Context,
	restaurantID int,
	header *multipart.FileHeader,
) (string, error) {

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		return "", errors.New("invalid file")
	}

	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := fmt.Sprintf(
		"restaurants/%d/%s%s",
		restaurantID,
		uuid.New().String(),
		ext,
	)

	return s.storage.Upload(ctx, key, f)
}

// --------------------------------------------------
// Validation
// --------------------------------------------------
func validate(restaurant *Restaurant) error {
	if restaurant.Name == "" {
		return errors.New("name is required")
	}
	for _, dish := range restaurant.Dishes {
		if dish.Name == "" {
			return errors.New("dish name is required")
		}
		if dish.Price < 0 {
			return errors.New("dish price must not be negative")
		}
	}
	return nil
}
