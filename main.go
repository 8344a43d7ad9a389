package main

import (
	"log"

	"food-store-api/cache"
	"food-store-api/config"
	"food-store-api/handlers"
	"food-store-api/repository"
	"food-store-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Set Gin mode
	if cfg.GinMode == "" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}

	var foods repository.FoodRepository = repository.NewFoodRepository(db)
	if cfg.RedisURL != "" {
		rdb, err := cache.ConnectRedis(cache.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Printf("⚠️  Redis unavailable, serving foods without cache: %v", err)
		} else {
			defer rdb.Close()
			foods = cache.NewCachedFoodRepository(foods, rdb, cfg.CacheTTL)
			log.Printf("✅ Food cache enabled on %s", cfg.RedisURL)
		}
	}

	h := handlers.New(
		foods,
		repository.NewCategoryRepository(db),
		repository.NewOrderRepository(db),
		repository.NewFeedbackRepository(db),
		repository.NewUserRepository(db),
	)
	h.SetAdminSignup(cfg.AllowAdminSignup)
	r := routes.NewRouter(h)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
