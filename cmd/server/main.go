package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"interviewlens/internal/clients"
	"interviewlens/internal/config"
	"interviewlens/internal/handlers"
	"interviewlens/internal/jobs"
	"interviewlens/internal/media"
	"interviewlens/internal/pipeline"
	"interviewlens/internal/queue"
	"interviewlens/internal/repositories"
	mongorepo "interviewlens/internal/repositories/mongo"
	"interviewlens/internal/routers"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// store: Mongo when configured, in-memory otherwise (local development)
	var repo repositories.InterviewRepository
	var mongoClient *mongorepo.Client
	if cfg.MongoURI != "" {
		mongoClient, err = mongorepo.NewClient(context.Background(), cfg.MongoURI)
		if err != nil {
			logger.Fatal("failed to connect to mongo", zap.Error(err))
		}
		repo, err = mongorepo.NewInterviewRepo(mongoClient, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			logger.Fatal("failed to initialise interview repo", zap.Error(err))
		}
	} else {
		logger.Warn("MONGO_URI not set, using in-memory store; records will not survive restarts")
		repo = repositories.NewMemoryRepository()
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	jobQueue := queue.New(rdb, cfg.QueueKey)

	httpClients := clients.NewHTTP(5 * time.Minute)
	transcriber := clients.NewTranscriber(httpClients, cfg.TranscriberURL)
	classifier := clients.NewClassifier(httpClients, cfg.ClassifierURL)
	ffmpeg := media.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath, logger)

	analysisPipeline := pipeline.New(repo, transcriber, classifier, ffmpeg, pipeline.Options{
		WorkDir:      cfg.WorkDir,
		MediaDir:     cfg.MediaDir,
		UnitSeconds:  cfg.FrameUnitSeconds,
		CleanupGrace: time.Duration(cfg.CleanupGraceSeconds) * time.Second,
	}, logger)

	worker := queue.NewWorker(jobQueue, analysisPipeline, cfg.WorkerCount, logger)
	worker.Start()

	janitor := jobs.NewJanitor(cfg.WorkDir, time.Duration(cfg.JanitorMaxAgeHours)*time.Hour, cfg.JanitorSchedule, logger)
	if err := janitor.Start(); err != nil {
		logger.Error("failed to start temp janitor", zap.Error(err))
	}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(10*time.Minute))

	interviewHandler := handlers.NewInterviewHandler(repo, jobQueue, cfg.UploadDir, logger)
	routers.RegisterHealthRoutes(router)
	routers.RegisterInterviewRoutes(router, interviewHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Minute, // uploads can be large
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("analysis service starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("analysis service shutting down...")

	janitor.Stop()
	worker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}

	logger.Info("analysis service exited")
}
