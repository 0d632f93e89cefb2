package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"katalog/internal/config"
	"katalog/internal/handler"
	"katalog/internal/middleware"
	"katalog/internal/repository/postgres"
	"katalog/internal/service/assistant"
	"katalog/internal/service/assistant/lexicon"
	"katalog/internal/service/catalog"
	"katalog/internal/service/describe"
	"katalog/internal/service/eventlog"
	"katalog/internal/service/extract"
	"katalog/internal/service/llm"
	"katalog/internal/session"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool (registers pgvector codecs)
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	productRepo := postgres.NewProductRepository(repoConfig)
	reviewRepo := postgres.NewReviewRepository(repoConfig)
	eventLogRepo := postgres.NewEventLogRepository(repoConfig)

	// OpenAI client serves both chat completion and embeddings
	llmClient, err := llm.NewClient(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.EmbeddingModel, cfg.EmbeddingDim, logger)
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	// Assistant core: lexicon -> normalizer/classifier -> retriever -> service
	lex, err := lexicon.New()
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}
	events := eventlog.New(eventLogRepo, logger)
	retriever := assistant.NewRetriever(
		productRepo,
		llmClient,
		assistant.NewNormalizer(lex),
		assistant.NewClassifier(lex),
		logger,
	)
	assistantService := assistant.NewService(retriever, llmClient, events, logger)

	// Catalog services
	extractor := extract.New(logger)
	describer := describe.New(llmClient, logger)
	productService := catalog.NewProductService(productRepo, reviewRepo, extractor, describer, llmClient, events, logger)
	reviewService := catalog.NewReviewService(reviewRepo, events, logger)

	// Session store for conversation state
	sessions := session.NewStore()

	// Handlers
	assistantHandler := handler.NewAssistantHandler(assistantService, sessions, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	logsHandler := handler.NewLogsHandler(eventLogRepo, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", productHandler.HealthCheck)

	// Assistant routes
	mux.HandleFunc("POST /api/ask", assistantHandler.Ask)
	mux.HandleFunc("GET /api/history", assistantHandler.History)
	mux.HandleFunc("POST /api/new-chat", assistantHandler.NewChat)

	// Product routes
	mux.HandleFunc("POST /api/products", productHandler.CreateProduct)
	mux.HandleFunc("GET /api/products", productHandler.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct)
	mux.HandleFunc("PUT /api/products/{id}", productHandler.UpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", productHandler.DeleteProduct)

	// Review routes
	mux.HandleFunc("POST /api/reviews", reviewHandler.AddReview)
	mux.HandleFunc("PUT /api/reviews/{id}", reviewHandler.UpdateReview)
	mux.HandleFunc("DELETE /api/reviews/{id}", reviewHandler.DeleteReview)

	// Audit log
	mux.HandleFunc("GET /api/logs", logsHandler.Latest)

	// Build middleware chain (wrap in reverse order)
	var root http.Handler = mux
	root = sessions.Middleware(root)
	root = middleware.Recovery(logger)(root)

	// CORS - outermost so OPTIONS pre-flight is handled first
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
