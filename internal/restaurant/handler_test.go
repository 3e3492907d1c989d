package restaurant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRestaurantTestRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	service := NewService(repo, &MockStorage{})
	handler := NewHandler(service)

	r.POST("/restaurants", handler.Create)
	r.GET("/restaurants", handler.List)
	r.GET("/restaurants/:id", handler.Get)
	r.DELETE("/restaurants/:id", handler.Delete)
	r.GET("/restaurants/search/nearby", handler.FilterByRadius)

	return r
}

func TestCreateRestaurantEndpoint(t *testing.T) {
	router := setupRestaurantTestRouter(NewMockRepository())

	body := `{
		"name": "Taj Palace",
		"price_tier": "premium",
		"latitude": 40.71,
		"longitude": -74.0,
		"dishes": [{"name": "Soup", "price": 5}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/restaurants", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created Restaurant
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Error("expected id to be assigned")
	}
	if len(created.Dishes) != 1 {
		t.Errorf("expected 1 dish, got %d", len(created.Dishes))
	}
}

func TestGetRestaurantEndpoint_NotFound(t *testing.T) {
	router := setupRestaurantTestRouter(NewMockRepository())

	req := httptest.NewRequest(http.MethodGet, "/restaurants/123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetRestaurantEndpoint_InvalidID(t *testing.T) {
	router := setupRestaurantTestRouter(NewMockRepository())

	req := httptest.NewRequest(http.MethodGet, "/restaurants/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestNearbyEndpoint_RequiresCoordinates(t *testing.T) {
	router := setupRestaurantTestRouter(NewMockRepository())

	req := httptest.NewRequest(http.MethodGet, "/restaurants/search/nearby?radius=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
