package restaurant

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	restaurants []Restaurant
	createErr   error
	nextID      int

	lastRadius float64
	savedURLs  []string
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	if m.createErr != nil {
		return m.createErr
	}

	restaurant.ID = m.nextID
	m.nextID++
	restaurant.CreatedAt = time.Now()
	for i := range restaurant.Dishes {
		restaurant.Dishes[i].ID = i + 1
		restaurant.Dishes[i].RestaurantID = restaurant.ID
	}

	m.restaurants = append(m.restaurants, *restaurant)
	return nil
}

func (m *MockRepository) List(ctx context.Context) ([]Restaurant, error) {
	return m.restaurants, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Restaurant, error) {
	for i := range m.restaurants {
		if m.restaurants[i].ID == id {
			return &m.restaurants[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	for i := range m.restaurants {
		if m.restaurants[i].ID == restaurant.ID {
			m.restaurants[i] = *restaurant
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	for i := range m.restaurants {
		if m.restaurants[i].ID == id {
			m.restaurants = append(m.restaurants[:i], m.restaurants[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockRepository) FilterByName(ctx context.Context, name string) ([]Restaurant, error) {
	var out []Restaurant
	for _, r := range m.restaurants {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(name)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRepository) FilterByPriceTier(ctx context.Context, tier string) ([]Restaurant, error) {
	var out []Restaurant
	for _, r := range m.restaurants {
		if r.PriceTier == tier {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRepository) FilterByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]Restaurant, error) {
	m.lastRadius = radiusKm
	return m.restaurants, nil
}

func (m *MockRepository) SaveImages(ctx context.Context, restaurantID int, urls []string) error {
	m.savedURLs = append(m.savedURLs, urls...)
	return nil
}

// --------------------------------------------------
// Mock Storage
// --------------------------------------------------

type MockStorage struct {
	keys []string
}

func (m *MockStorage) Upload(ctx context.Context, key string, file multipart.File) (string, error) {
	m.keys = append(m.keys, key)
	return "https://cdn.test/" + key, nil
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestCreateRestaurant_Success(t *testing.T) {
	mockRepo := NewMockRepository()
	service := NewService(mockRepo, &MockStorage{})

	restaurant, err := service.CreateRestaurant(context.Background(), &Restaurant{
		Name:      "Taj Palace",
		PriceTier: "premium",
		Latitude:  40.71,
		Longitude: -74.00,
		Dishes: []Dish{
			{Name: "Soup", Price: 5},
			{Name: "Salad", Price: 4},
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if restaurant.ID == 0 {
		t.Errorf("expected ID to be set")
	}
	if len(restaurant.Dishes) != 2 {
		t.Errorf("expected 2 dishes, got %d", len(restaurant.Dishes))
	}
}

func TestCreateRestaurant_MissingName(t *testing.T) {
	service := NewService(NewMockRepository(), &MockStorage{})

	_, err := service.CreateRestaurant(context.Background(), &Restaurant{
		PriceTier: "budget",
	})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestCreateRestaurant_NegativeDishPrice(t *testing.T) {
	service := NewService(NewMockRepository(), &MockStorage{})

	_, err := service.CreateRestaurant(context.Background(), &Restaurant{
		Name: "Broken Bistro",
		Dishes: []Dish{
			{Name: "Soup", Price: -1},
		},
	})
	if err == nil {
		t.Fatal("expected error for negative dish price")
	}
}

func TestCreateRestaurant_RepositoryError(t *testing.T) {
	mockRepo := NewMockRepository()
	mockRepo.createErr = errors.New("insert failed")
	service := NewService(mockRepo, &MockStorage{})

	_, err := service.CreateRestaurant(context.Background(), &Restaurant{Name: "X"})
	if err == nil {
		t.Fatal("expected repository error to propagate")
	}
}

func TestListRestaurants(t *testing.T) {
	mockRepo := NewMockRepository()
	service := NewService(mockRepo, &MockStorage{})

	service.CreateRestaurant(context.Background(), &Restaurant{Name: "Taj Palace"})
	service.CreateRestaurant(context.Background(), &Restaurant{Name: "Dragon Court"})

	restaurants, err := service.ListRestaurants(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(restaurants) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(restaurants))
	}
}

func TestUpdateRestaurant_NotFound(t *testing.T) {
	service := NewService(NewMockRepository(), &MockStorage{})

	_, err := service.UpdateRestaurant(context.Background(), &Restaurant{
		ID:   99,
		Name: "Ghost Kitchen",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRestaurant(t *testing.T) {
	mockRepo := NewMockRepository()
	service := NewService(mockRepo, &MockStorage{})

	created, _ := service.CreateRestaurant(context.Background(), &Restaurant{Name: "Taj Palace"})

	if err := service.DeleteRestaurant(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.GetRestaurant(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected restaurant to be gone, got %v", err)
	}
}

func TestFilterByName_RequiresName(t *testing.T) {
	service := NewService(NewMockRepository(), &MockStorage{})

	if _, err := service.FilterByName(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestFilterByRadius_DefaultsToOneKilometer(t *testing.T) {
	mockRepo := NewMockRepository()
	service := NewService(mockRepo, &MockStorage{})

	if _, err := service.FilterByRadius(context.Background(), 40.71, -74.00, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mockRepo.lastRadius != 1 {
		t.Fatalf("expected default radius 1, got %v", mockRepo.lastRadius)
	}
}

func TestFilterByRadius_PassesExplicitRadius(t *testing.T) {
	mockRepo := NewMockRepository()
	service := NewService(mockRepo, &MockStorage{})

	if _, err := service.FilterByRadius(context.Background(), 40.71, -74.00, 7.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mockRepo.lastRadius != 7.5 {
		t.Fatalf("expected radius 7.5, got %v", mockRepo.lastRadius)
	}
}

func TestUploadImages_RequiresFiles(t *testing.T) {
	service := NewService(NewMockRepository(), &MockStorage{})

	if _, err := service.UploadImages(context.Background(), 1, nil); err == nil {
		t.Fatal("expected error for missing files")
	}
}

func TestUploadImages_UnknownRestaurant(t *testing.T) {
	service := NewService(NewMockRepository(), &MockStorage{})

	_, err := service.UploadImages(context.Background(), 42, []*multipart.FileHeader{
		{Filename: "front.jpg"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
