package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/studymodules/auth-service/config"
	"github.com/studymodules/auth-service/db"
	"github.com/studymodules/auth-service/internal/auth/domain"
	"github.com/studymodules/auth-service/internal/auth/handler"
	"github.com/studymodules/auth-service/internal/auth/middleware"
	repo "github.com/studymodules/auth-service/internal/auth/repository/postgres"
	redisrepo "github.com/studymodules/auth-service/internal/auth/repository/redis"
	"github.com/studymodules/auth-service/internal/auth/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresRepository(dbPool)

	var blacklist domain.TokenBlacklist
	switch cfg.BlacklistBackend {
	case config.BlacklistBackendRedis:
		blacklist = redisrepo.NewBlacklist(db.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
	default:
		blacklist = repo.NewPostgresBlacklist(dbPool)
	}

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryHours)
	userService := service.NewUserService(userRepo, blacklist, tokenService)
	authHandler := handler.NewAuthHandler(userService)
	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowMin)*time.Minute)

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(fmt.Sprintf("@every %dm", cfg.BlacklistSweepMin), func() {
		deleted, err := blacklist.SweepExpired(context.Background())
		if err != nil {
			log.Printf("warn: blacklist sweep failed: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("blacklist sweep removed %d expired entries", deleted)
		}
	}); err != nil {
		log.Fatalf("failed to schedule blacklist sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	app := fiber.New()
	app.Use(limiter.Handle())
	handler.RegisterRoutes(app, authHandler)

	log.Printf("auth service listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
