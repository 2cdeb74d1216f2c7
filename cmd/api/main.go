// Package main is the entry point for the snipstash API server.
package main

import (
	"context"
	"time"

	"snipstash/internal/config"
	"snipstash/internal/data"
	"snipstash/internal/http/handler"
	"snipstash/internal/http/router"
	"snipstash/internal/repository"
	"snipstash/internal/repository/cached"
	"snipstash/internal/repository/postgres"
	"snipstash/internal/service"
	"snipstash/pkg/logger"

	"github.com/go-redis/redis/v8"
)

func main() {
	ctx := context.Background()
	config.InitConf()
	logger.InitLogging()

	pool, err := data.NewPostgresPool(ctx)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	pgRepo := postgres.NewSnippetRepository(pool)
	if err := pgRepo.EnsureSchema(ctx); err != nil {
		logger.Fatal(ctx, "failed to ensure schema: %v", err)
	}

	var snippetRepo repository.SnippetRepository = pgRepo
	var redisClient *redis.Client
	if config.Conf.CacheEnabled {
		redisClient = data.NewRedisClient()
		ttl := time.Duration(config.Conf.CacheTTLSeconds) * time.Second
		snippetRepo = cached.NewSnippetRepository(pgRepo, redisClient, ttl)
		logger.Info(ctx, "redis cache layer enabled, ttl=%s", ttl)
	}

	svc := service.NewService(snippetRepo, service.RealClock{})
	h := handler.NewHandler(svc)
	health := handler.NewHealthHandler(pool, redisClient)

	engine := router.NewRouter(h, health)
	logger.Info(ctx, "listening on :%s", config.Conf.Port)
	if err := engine.Run(":" + config.Conf.Port); err != nil {
		logger.Fatal(ctx, "failed to start server: %v", err)
	}
}
