package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lovesync-backend/internal/config"
	"lovesync-backend/internal/db"
	"lovesync-backend/internal/handlers"
	"lovesync-backend/internal/middleware"
	"lovesync-backend/internal/repository"
	"lovesync-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Test database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Apply schema migrations
	if err := db.ApplyMigrations(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	// Object storage
	storage, err := services.NewStorage(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage client")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	coupleRepo := repository.NewCoupleRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	wishRepo := repository.NewWishRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	memoryRepo := repository.NewMemoryRepository(pool)
	dailyPhotoRepo := repository.NewDailyPhotoRepository(pool)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpDays)
	userService := services.NewUserService(userRepo, storage)
	coupleService := services.NewCoupleService(coupleRepo, userRepo)
	answerService := services.NewAnswerService(answerRepo, coupleRepo)
	wishService := services.NewWishService(wishRepo)
	eventService := services.NewEventService(eventRepo)
	memoryService, err := services.NewMemoryService(memoryRepo, storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create memory service")
	}
	dailyPhotoService := services.NewDailyPhotoService(dailyPhotoRepo, storage)
	wsHub := services.NewWSHub()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	coupleHandler := handlers.NewCoupleHandler(coupleService, userService, wsHub)
	answerHandler := handlers.NewAnswerHandler(answerService, userService)
	wishHandler := handlers.NewWishHandler(wishService, userService)
	eventHandler := handlers.NewEventHandler(eventService, userService)
	memoryHandler := handlers.NewMemoryHandler(memoryService, userService)
	dailyPhotoHandler := handlers.NewDailyPhotoHandler(dailyPhotoService, userService)
	gameDataHandler := handlers.NewGameDataHandler()
	wsHandler := handlers.NewWebSocketHandler(wsHub, authService, userService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authService))

			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
			r.Post("/me/avatar", userHandler.UploadAvatar)
			r.Post("/me/invite-code", userHandler.GenerateInviteCode)
			r.Get("/users/{user_id}", userHandler.GetPublicProfile)

			r.Post("/couple/connect", coupleHandler.Connect)
			r.Delete("/couple", coupleHandler.Disconnect)
			r.Get("/couple", coupleHandler.Get)

			r.Post("/couple/answers", answerHandler.Submit)
			r.Get("/couple/answers", answerHandler.History)
			r.Delete("/couple/answers/{answer_id}", answerHandler.Delete)

			r.Post("/wishes", wishHandler.Add)
			r.Get("/wishes", wishHandler.List)
			r.Get("/wishes/partner", wishHandler.PartnerWishes)
			r.Patch("/wishes/{wish_id}/completion", wishHandler.ToggleCompletion)
			r.Delete("/wishes/{wish_id}", wishHandler.Delete)

			r.Post("/couple/events", eventHandler.Add)
			r.Get("/couple/events", eventHandler.List)
			r.Put("/couple/events/{event_id}", eventHandler.Update)
			r.Delete("/couple/events/{event_id}", eventHandler.Delete)

			r.Post("/couple/memories", memoryHandler.Upload)
			r.Get("/couple/memories", memoryHandler.List)
			r.Patch("/couple/memories/{memory_id}", memoryHandler.Update)
			r.Delete("/couple/memories/{memory_id}", memoryHandler.Delete)

			r.Post("/couple/photo-of-day", dailyPhotoHandler.Upload)
			r.Get("/couple/photo-of-day", dailyPhotoHandler.Latest)

			r.Get("/games/data", gameDataHandler.Get)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
