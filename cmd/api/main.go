package main

import (
	"context"
	"log"

	"github.com/ovenbird/cookbook-backend/config"
	"github.com/ovenbird/cookbook-backend/internal/api"
	"github.com/ovenbird/cookbook-backend/internal/database"
	"github.com/ovenbird/cookbook-backend/internal/router"
	"github.com/ovenbird/cookbook-backend/internal/server"
	"github.com/ovenbird/cookbook-backend/internal/service"
	"github.com/ovenbird/cookbook-backend/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	mediaStore, err := service.NewMediaStore(cfg.MediaDir)
	if err != nil {
		log.Fatalf("Failed to prepare media directory: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s3cfg, err := config.NewS3Config(ctx)
	if err != nil {
		log.Fatalf("Failed to configure S3: %v", err)
	}

	queue := worker.NewRedisQueue(redisClient, cfg.VideoQueueKey)
	encoder := &worker.FFmpegEncoder{}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	videoService := service.NewVideoService(db, mediaStore, queue, encoder, s3cfg)

	runner := worker.NewRunner(redisClient, cfg.VideoQueueKey, videoService.Process)
	go func() {
		if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Video worker stopped: %v", err)
		}
	}()

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewCatalogHandler(service.NewCuisineService(db), "/cuisines"),
		api.NewCatalogHandler(service.NewAllergenService(db), "/allergens"),
		api.NewCatalogHandler(service.NewIngredientService(db), "/ingredients"),
		api.NewRecipeHandler(recipeService, authService),
		api.NewVideoHandler(videoService, authService, cfg.AppURL),
		cfg.MediaDir,
	)

	srv := server.NewServer(engine)
	log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
	if err := srv.Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
