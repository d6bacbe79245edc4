package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nagmanijha/ResumeRev.ai/internal/config"
	"github.com/nagmanijha/ResumeRev.ai/internal/handlers"
	"github.com/nagmanijha/ResumeRev.ai/internal/repositories"
	"github.com/nagmanijha/ResumeRev.ai/internal/services"
)

const maxBatchFiles = 20

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	analysisRepo := repositories.NewAnalysisRepository(db)
	batchRepo := repositories.NewBatchRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize Gemini AI behind a circuit breaker
	breaker := services.NewAPIBreaker()
	geminiService, err := services.NewGeminiService(cfg, breaker)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	vectorStore, err := services.NewVectorStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize the analysis pipeline
	cacheService := services.NewCacheService(cfg)
	extractor := services.NewTextExtractor(cfg.Storage.MaxFileSize)
	parser := services.NewResumeParser(extractor)
	roleService := services.NewRoleService()
	semanticService := services.NewSemanticService(geminiService)
	skillMatcher := services.NewSkillMatcher(geminiService)
	scoringService := services.NewScoringService(semanticService, skillMatcher, roleService)
	suggestionService := services.NewSuggestionService(geminiService, cacheService, cfg.Worker.RetryMaxAttempts)
	reportService := services.NewReportService()

	analyzerService := services.NewAnalyzerService(
		parser,
		scoringService,
		roleService,
		suggestionService,
		analysisRepo,
		geminiService,
		vectorStore,
	)
	log.Println("✅ Analyzer service initialized")

	// Initialize worker
	worker := services.NewWorker(
		batchRepo,
		analyzerService,
		storageService,
		cfg.Worker.Concurrency,
		cfg.Worker.ItemParallelism,
		cfg.Worker.PollInterval,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzerService)
	resultHandler := handlers.NewResultHandler(analysisRepo, analyzerService)
	reportHandler := handlers.NewReportHandler(analyzerService, reportService)
	batchHandler := handlers.NewBatchHandler(batchRepo, storageService, worker, maxBatchFiles)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ResumeRev API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * (maxBatchFiles + 1),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Rate limit only the endpoints that run the scoring pipeline
	analysisLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Window,
	})

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analysisLimiter, analyzeHandler.HandleAnalyze)
	api.Get("/results", resultHandler.HandleListResults)
	api.Get("/results/:id", resultHandler.HandleGetResult)
	api.Get("/results/:id/similar", resultHandler.HandleGetSimilar)
	api.Post("/report", analysisLimiter, reportHandler.HandleReport)
	api.Post("/batch", analysisLimiter, batchHandler.HandleCreateBatch)
	api.Get("/batch/:id", batchHandler.HandleGetBatch)
	api.Patch("/batch/:id/candidates/:itemID", batchHandler.HandleUpdateCandidateStatus)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ResumeRev API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/results",
				"GET /api/v1/results/:id",
				"GET /api/v1/results/:id/similar",
				"POST /api/v1/report",
				"POST /api/v1/batch",
				"GET /api/v1/batch/:id",
				"PATCH /api/v1/batch/:id/candidates/:itemID",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
