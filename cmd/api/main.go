package main

import (
	"context"
	"log"
	"os"
	"time"

	"zaika/internal/db"
	"zaika/internal/restaurant"
	"zaika/internal/search"
	"zaika/internal/storage"
	"zaika/internal/upload"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("R2 init failed:", err)
	}

	// ───────────────────────── REPOS & SERVICES ─────────────────────────
	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	restaurantService := restaurant.NewService(restaurantRepo, r2Client)

	searchEngine := search.NewGeminiEngine()
	searchService := search.NewService(
		restaurantRepo,
		searchEngine,
		upload.NewStaging(""),
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	restaurantHandler := restaurant.NewHandler(restaurantService)
	searchHandler := search.NewHandler(searchService)

	// ───────────────────────── RESTAURANT ROUTES ─────────────────────────
	restaurants := r.Group("/restaurants")
	{
		restaurants.POST("", restaurantHandler.Create)
		restaurants.GET("", restaurantHandler.List)
		restaurants.GET("/:id", restaurantHandler.Get)
		restaurants.PUT("/:id", restaurantHandler.Update)
		restaurants.DELETE("/:id", restaurantHandler.Delete)
		restaurants.POST("/:id/images", restaurantHandler.UploadImages)

		restaurants.GET("/search/name", restaurantHandler.FilterByName)
		restaurants.GET("/search/price", restaurantHandler.FilterByPriceTier)
		restaurants.GET("/search/nearby", restaurantHandler.FilterByRadius)
	}

	// ───────────────────────── AI SEARCH ROUTES ─────────────────────────
	r.POST("/search", searchHandler.SearchByText)
	r.POST("/search/image", searchHandler.SearchByImage)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("API running at http://localhost:8000")
	r.Run(":8000")
}
