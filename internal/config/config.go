package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	AppEnv         string
	PlatformAPIURL string
	LoginURL       string
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	RedisAddr      string
	ShopAddress    string
	ShopPhone      string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:        os.Getenv("APP_PORT"),
		AppEnv:         os.Getenv("APP_ENV"),
		PlatformAPIURL: os.Getenv("PLATFORM_API_URL"),
		LoginURL:       os.Getenv("LOGIN_URL"),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		ShopAddress:    os.Getenv("SHOP_ADDRESS"),
		ShopPhone:      os.Getenv("SHOP_PHONE"),
	}

	if cfg.PlatformAPIURL == "" {
		log.Fatal("Environment variables not loaded properly: PLATFORM_API_URL is required")
	}

	// Pickup point defaults for direct payment orders.
	if cfg.ShopAddress == "" {
		cfg.ShopAddress = "123 Pham The Hien, Quan 8"
	}
	if cfg.ShopPhone == "" {
		cfg.ShopPhone = "0908228121"
	}

	return cfg
}
