package restaurant

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type dishRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type restaurantRequest struct {
	Name      string        `json:"name"`
	PriceTier string        `json:"price_tier"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Dishes    []dishRequest `json:"dishes"`
}

func (req *restaurantRequest) toModel() *Restaurant {
	restaurant := &Restaurant{
		Name:      req.Name,
		PriceTier: req.PriceTier,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	for _, d := range req.Dishes {
		restaurant.Dishes = append(restaurant.Dishes, Dish{
			Name:  d.Name,
			Price: d.Price,
		})
	}
	return restaurant
}

// --------------------------------------------------
// POST /restaurants
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	restaurant, err := h.service.CreateRestaurant(c.Request.Context(), req.toModel())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

// --------------------------------------------------
// GET /restaurants
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	restaurants, err := h.service.ListRestaurants(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// GET /restaurants/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	var restaurantID int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	restaurant, err := h.service.GetRestaurant(c.Request.Context(), restaurantID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurant"})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// --------------------------------------------------
// PUT /restaurants/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var restaurantID int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	restaurant := req.toModel()
	restaurant.ID = restaurantID

	updated, err := h.service.UpdateRestaurant(c.Request.Context(), restaurant)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --------------------------------------------------
// DELETE /restaurants/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	var restaurantID int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	err := h.service.DeleteRestaurant(c.Request.Context(), restaurantID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete restaurant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "restaurant deleted"})
}

// --------------------------------------------------
// GET /restaurants/search/name?name=
// --------------------------------------------------
func (h *Handler) FilterByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	restaurants, err := h.service.FilterByName(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to filter restaurants"})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// GET /restaurants/search/price?tier=
// --------------------------------------------------
func (h *Handler) FilterByPriceTier(c *gin.Context) {
	tier := c.Query("tier")
	if tier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tier is required"})
		return
	}

	restaurants, err := h.service.FilterByPriceTier(c.Request.Context(), tier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to filter restaurants"})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// GET /restaurants/search/nearby?lat=&lng=&radius=
// --------------------------------------------------
func (h *Handler) FilterByRadius(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng"})
		return
	}

	// radius is optional, service falls back to 1 km
	var radius float64
	if v := c.Query("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
			return
		}
	}

	restaurants, err := h.service.FilterByRadius(c.Request.Context(), lat, lng, radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to filter restaurants"})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// POST /restaurants/:id/images
// --------------------------------------------------
func (h *Handler) UploadImages(c *gin.Context) {
	var restaurantID int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || form.File["images"] == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "images are required"})
		return
	}

	urls, err := h.service.UploadImages(
		c.Request.Context(),
		restaurantID,
		form.File["images"],
	)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "images uploaded successfully",
		"images":  urls,
	})
}
