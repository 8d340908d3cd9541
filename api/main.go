package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/inventory-catalog/api/docs"
	"github.com/inventory-catalog/api/internal/auth"
	"github.com/inventory-catalog/api/internal/config"
	"github.com/inventory-catalog/api/internal/db"
	router "github.com/inventory-catalog/api/internal/http"
	"github.com/inventory-catalog/api/internal/http/ban"
	"github.com/inventory-catalog/api/internal/http/handlers"
	"github.com/inventory-catalog/api/internal/http/ratelimit"
	"github.com/inventory-catalog/api/internal/redissvc"
	"github.com/inventory-catalog/api/internal/repo"
)

// @title Product Catalog API
// @version 1.0
// @description REST API for the product catalog, stock audit trail and bulk CSV transfer.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	auth.SetSecret(cfg.JWTSecret)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, context.Background())
	if err := redisService.Ping(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	ban.SetRedisService(redisService)

	go ratelimit.StartVisitorCleanupLoop()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetHistoryRepo(repo.NewPostgresHistoryRepository(database))
	handlers.SetImportWorkers(cfg.ImportWorkers)

	r := router.NewRouter()
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Println("✅ Server running on", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
