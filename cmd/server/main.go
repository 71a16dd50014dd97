package main

import (
	"log"
	"time"

	"koi-checkout/internal/checkout"
	"koi-checkout/internal/config"
	"koi-checkout/internal/db"
	"koi-checkout/internal/delivery"
	"koi-checkout/internal/handler"
	"koi-checkout/internal/logger"
	"koi-checkout/internal/middleware"
	"koi-checkout/internal/platform"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	client := platform.NewClient(cfg.PlatformAPIURL)

	journal := delivery.NewRepository(database)
	dispatcher := delivery.NewDispatcher(client, journal, 0)
	defer dispatcher.Close()

	var guard checkout.Guard = checkout.NewMemoryGuard()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		guard = checkout.NewRedisGuard(rdb, 30*time.Second)
	}

	svc := checkout.NewService(client, dispatcher, guard, cfg.ShopAddress, cfg.ShopPhone)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogging())
	handler.RegisterRoutes(router, handler.NewCheckoutHandler(svc), cfg.LoginURL)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Checkout service running at http://localhost:%s/", port)
	log.Fatal(router.Run(":" + port))
}
