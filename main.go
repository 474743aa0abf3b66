package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is a local convenience; its absence is fine in deployed environments.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	kv := openKV(ctx, logger)
	store := &logStore{kv: kv}

	// The catalog gates startup: no logging route is served until the load
	// has either succeeded or fallen back.
	catalog, err := loadCatalog(ctx, kv, os.Getenv("CATALOG_URL"))
	if err != nil {
		logger.Warn("catalog source unavailable, using built-in fallback", zap.Error(err))
	}

	// The session's date key is resolved exactly once. See logController.
	date := time.Now().Format("2006-01-02")
	controller := newLogController(ctx, store, catalog, logger, date)

	logger.Info("session ready",
		zap.String("date", date),
		zap.Int("catalog_entries", len(catalog.entries())))

	router := gin.Default()
	router.SetTrustedProxies(nil)

	h := &Handler{controller: controller}
	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	if err := router.Run("localhost:" + port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// openKV selects the persistence backend from STORE_BACKEND. A backend that
// can't be opened degrades to the in-memory adapter — the session then runs
// without durable storage, which the design tolerates.
func openKV(ctx context.Context, logger *zap.Logger) kvStore {
	switch backend := os.Getenv("STORE_BACKEND"); backend {
	case "postgres":
		kv, err := newPostgresKV(ctx, os.Getenv("DB_URL"))
		if err != nil {
			logger.Error("postgres store unavailable, running in-memory only", zap.Error(err))
			return newMemoryKV()
		}
		return kv
	case "memory":
		return newMemoryKV()
	default:
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		return newRedisKV(addr, os.Getenv("REDIS_PASSWORD"))
	}
}
