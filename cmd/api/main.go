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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"careerpath/careerpath-api/internal/config"
	"careerpath/careerpath-api/internal/handlers"
	"careerpath/careerpath-api/internal/repositories"
	"careerpath/careerpath-api/internal/services"
)

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
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage and text extraction
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	textExtractor := services.NewTextExtractor(
		services.NewPDFParserService(),
		services.NewDocxParserService(),
	)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini. The model path is optional: without credentials
	// every parse and chat runs on the deterministic local path.
	var modelClient services.ModelClient
	if cfg.ModelEnabled() {
		modelClient, err = services.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, running in local extraction mode")
	}

	// Initialize the Qdrant knowledge base. Also optional: when it is
	// unreachable the API still parses resumes and chats, just without
	// retrieved sources.
	var knowledgeService services.KnowledgeService
	var indexWorker services.IndexWorker
	if modelClient != nil {
		vectorStore, err := services.NewQdrantStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Knowledge base unavailable: %v\n", err)
		} else if err := vectorStore.InitCollection(); err != nil {
			log.Printf("⚠️  Knowledge base unavailable: %v\n", err)
		} else {
			knowledgeService = services.NewKnowledgeService(modelClient, vectorStore, cfg.Qdrant.Collection)
			indexWorker = services.NewIndexWorker(
				services.NewProfileIndexer(modelClient, vectorStore),
				cfg.Worker.Concurrency,
			)
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	// Initialize extractor and chat services
	extractorService := services.NewExtractorService(modelClient, cfg.Gemini.Timeout)
	chatService := services.NewChatService(modelClient, knowledgeService, cfg.Gemini.Timeout, cfg.Gemini.MaxRetries)
	log.Println("✅ Extractor and chat services initialized")

	// Start index worker
	if indexWorker != nil {
		indexWorker.Start(context.Background())
		log.Println("✅ Index worker started successfully")
	}

	// Initialize handlers
	parseHandler := handlers.NewParseHandler(extractorService)
	uploadHandler := handlers.NewUploadHandler(
		resumeRepo,
		storageService,
		textExtractor,
		extractorService,
		indexWorker,
		cfg.Storage.MaxFileSize,
	)
	resumeHandler := handlers.NewResumeHandler(resumeRepo)
	chatHandler := handlers.NewChatHandler(chatService)
	retrieveHandler := handlers.NewRetrieveHandler(knowledgeService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CareerPath AI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

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
	api.Post("/parse-resume", parseHandler.HandleParseResume)
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Get("/resumes", resumeHandler.HandleListResumes)
	api.Get("/resumes/:id", resumeHandler.HandleGetResume)
	api.Post("/chat", chatHandler.HandleChat)
	api.Post("/retrieve", retrieveHandler.HandleRetrieve)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CareerPath AI API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/parse-resume",
				"POST /api/v1/upload",
				"GET /api/v1/resumes",
				"GET /api/v1/resumes/:id",
				"POST /api/v1/chat",
				"POST /api/v1/retrieve",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if indexWorker != nil {
			indexWorker.Stop()
		}
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
