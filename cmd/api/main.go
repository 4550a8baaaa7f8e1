package main

import (
	"context"
	"errors"
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

	"talentflow/recruitment-api/internal/config"
	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/handlers"
	"talentflow/recruitment-api/internal/repositories"
	"talentflow/recruitment-api/internal/services"
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
	jobRepo := repositories.NewJobRepository(db)
	stepRepo := repositories.NewStepRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize domain services
	pipelineService := services.NewPipelineService(
		jobRepo,
		stepRepo,
		progressRepo,
		cfg.Pipeline.StrictStepEdits,
	)
	applicationService := services.NewApplicationService(appRepo, jobRepo)
	progressService := services.NewProgressService(progressRepo)
	assessmentService := services.NewAssessmentService(geminiService)
	cvAnalyzer := services.NewCVAnalyzerService(
		appRepo,
		progressService,
		geminiService,
		qdrantService,
	)

	voiceService := services.NewVoiceService(cfg.Voice.APIKey, cfg.Voice.BaseURL)
	sessionRegistry := services.NewSessionRegistry()
	interviewService := services.NewInterviewService(
		appRepo,
		progressService,
		geminiService,
		voiceService,
		sessionRegistry,
		cfg.Pipeline.MinTranscriptLength,
		cfg.Pipeline.MaxInterviewDuration,
	)
	log.Println("✅ Domain services initialized")

	// Initialize job requirement indexer
	indexer := services.NewJobIndexer(
		jobRepo,
		geminiService,
		qdrantService,
		cfg.Indexer.Concurrency,
		cfg.Indexer.RetryMaxAttempts,
	)

	ctx := context.Background()
	indexer.Start(ctx)
	log.Println("✅ Job indexer started successfully")

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(jobRepo, pipelineService, indexer)
	stepHandler := handlers.NewStepHandler(pipelineService, assessmentService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	progressHandler := handlers.NewProgressHandler(progressService)
	documentHandler := handlers.NewDocumentHandler(
		docRepo,
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	cvHandler := handlers.NewCVHandler(cvAnalyzer)
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "TalentFlow Recruitment API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
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

	// Jobs and pipeline
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Patch("/jobs/:id", jobHandler.HandleUpdateJob)
	api.Patch("/jobs/:id/status", jobHandler.HandleJobStatus)
	api.Post("/jobs/:id/steps", stepHandler.HandleAddStep)
	api.Get("/jobs/:id/steps", stepHandler.HandleListSteps)
	api.Patch("/jobs/:id/steps/:stepId", stepHandler.HandleUpdateStep)
	api.Delete("/jobs/:id/steps/:stepId", stepHandler.HandleDeleteStep)

	// Assessment content generation
	api.Post("/jobs/:id/steps/:stepId/generate-aptitude", stepHandler.HandleGenerateAptitude)
	api.Post("/jobs/:id/steps/:stepId/generate-interview", stepHandler.HandleGenerateInterview)

	// Applications and progress
	api.Post("/applications", applicationHandler.HandleApply)
	api.Get("/applications", applicationHandler.HandleListApplications)
	api.Patch("/applications/:id", applicationHandler.HandleUpdateApplication)
	api.Get("/applications/:id/progress", progressHandler.HandleListProgress)
	api.Patch("/applications/:id/progress/:progressId", progressHandler.HandleDecision)

	// Documents and scoring
	api.Post("/applications/extract-document", documentHandler.HandleExtractDocument)
	api.Post("/applications/:id/analyze-cv", cvHandler.HandleAnalyzeCV)

	// Live interviews
	api.Post("/applications/:id/interview", interviewHandler.HandleCreateInterview)
	api.Post("/applications/:id/interview/events", interviewHandler.HandleInterviewEvent)
	api.Post("/applications/:id/analyze-interview", interviewHandler.HandleAnalyzeInterview)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "TalentFlow Recruitment API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"PATCH /api/v1/jobs/:id/status",
				"POST /api/v1/jobs/:id/steps",
				"POST /api/v1/applications",
				"POST /api/v1/applications/extract-document",
				"POST /api/v1/applications/:id/analyze-cv",
				"POST /api/v1/applications/:id/interview",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		indexer.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

}

// customErrorHandler maps domain errors onto HTTP statuses so handlers can
// return service errors directly.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValidation):
		code = fiber.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = fiber.StatusConflict
	case errors.Is(err, errs.ErrPreconditionFailed):
		code = fiber.StatusPreconditionFailed
	case errors.Is(err, errs.ErrTranscriptTooShort),
		errors.Is(err, errs.ErrUnsupportedFormat),
		errors.Is(err, errs.ErrEmptyDocument):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrMalformedAIResponse),
		errors.Is(err, errs.ErrUpstreamService):
		code = fiber.StatusBadGateway
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
