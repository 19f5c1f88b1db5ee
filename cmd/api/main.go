package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/streakmate/streakmate-api/internal/adapters/cache"
	adapterHTTP "github.com/streakmate/streakmate-api/internal/adapters/handler/http"
	"github.com/streakmate/streakmate-api/internal/adapters/repository"
	"github.com/streakmate/streakmate-api/internal/core/services"
	"github.com/streakmate/streakmate-api/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	serverPort := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}
	jwtIssuer := getEnv("JWT_ISSUER", "streakmate-api")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rdb, err := cache.NewSnapshotClient(context.Background(), cache.RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	if err != nil {
		// Leaderboards recompute on demand without the cache, so Redis being
		// down degrades performance, not correctness.
		log.Printf("Redis unavailable, running without leaderboard cache: %v", err)
		rdb = nil
	}

	userRepo := repository.NewPostgresUserRepository(db.DB)
	groupRepo := repository.NewPostgresGroupRepository(db)
	activityRepo := repository.NewPostgresActivityRepository(db)

	var snapshotCache services.SnapshotCache
	var snapshotStore workers.SnapshotStore
	if rdb != nil {
		leaderboardCache := cache.NewRedisLeaderboardCache(rdb)
		snapshotCache = leaderboardCache
		snapshotStore = leaderboardCache
	}

	worker := workers.NewLeaderboardWorker(groupRepo, userRepo, activityRepo, snapshotStore)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(jwtSecret, jwtIssuer, 24*time.Hour, userRepo)
	activityService := services.NewActivityService(activityRepo, userRepo, worker)
	groupService := services.NewGroupService(groupRepo, userRepo, worker)
	leaderboardService := services.NewLeaderboardService(groupRepo, userRepo, activityRepo, snapshotCache)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService, tokenService),
		ActivityHandler:    adapterHTTP.NewActivityHandler(activityService),
		GroupHandler:       adapterHTTP.NewGroupHandler(groupService),
		LeaderboardHandler: adapterHTTP.NewLeaderboardHandler(leaderboardService),
		CompleteHandler:    adapterHTTP.NewCompleteHandler(activityService),
		TokenService:       tokenService,
		DB:                 db,
		Redis:              rdb,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("StreakMate API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
