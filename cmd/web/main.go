package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Decan209/easy-tick-bw/internal/config"
	apphttp "github.com/Decan209/easy-tick-bw/internal/http"
	"github.com/Decan209/easy-tick-bw/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	st, err := storage.FromConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	var rdb *redis.Client
	if cfg.ExclusionStore == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
	}

	r := apphttp.NewRouter(logger, db, cfg, st, rdb)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
