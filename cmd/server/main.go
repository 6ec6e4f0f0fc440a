package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/internal/ai"
	"formforge/internal/cache"
	"formforge/internal/config"
	"formforge/internal/repository"
	"formforge/internal/service"
	"formforge/internal/transport/rest"
	"formforge/internal/worker"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Generate: %s", aiConfig.Models.Generate)
	log.Printf("  Analyze:  %s", aiConfig.Models.Analyze)
	log.Printf("  Insight:  %s", aiConfig.Models.Insight)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured ✓")
	} else {
		log.Println("  API Key:  NOT SET (generation disabled, analysis degrades)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories and caches
	formRepo := repository.NewFormRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	insightCache := cache.NewInsightCache(rdb)

	// Initialize services
	invoker := ai.NewClient(aiConfig)
	generatorSvc := service.NewGeneratorService(formRepo, invoker, aiConfig.Models)
	analyzerSvc := service.NewAnalyzerService(invoker, aiConfig.Models)
	analyticsSvc := service.NewAnalyticsService(formRepo, responseRepo, insightCache)
	insightSvc := service.NewInsightService(formRepo, responseRepo, analyticsSvc, invoker, aiConfig.Models, insightCache)
	submissionSvc := service.NewSubmissionService(formRepo, responseRepo)

	// Background analysis worker
	analysisWorker := worker.NewAnalysisWorker(analyzerSvc, responseRepo, 64)
	submissionSvc.SetScheduler(analysisWorker)
	analysisWorker.Start()
	log.Println("Analysis worker started")

	// Create router with container
	container := &rest.Container{
		GeneratorService:  generatorSvc,
		SubmissionService: submissionSvc,
		InsightService:    insightSvc,
		AnalyticsService:  analyticsSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/forms/generate")
		log.Println("  POST /v1/forms")
		log.Println("  GET  /v1/forms/{formId}")
		log.Println("  POST /v1/forms/{formId}/responses")
		log.Println("  GET  /v1/forms/{formId}/insights")
		log.Println("  POST /v1/forms/{formId}/optimize")
		log.Println("  POST /v1/validations/suggest")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	analysisWorker.Stop()
	log.Println("Server exited")
}
