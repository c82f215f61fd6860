package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/smart-ats/internal/config"
	"alfredoptarigan/smart-ats/internal/handlers"
	"alfredoptarigan/smart-ats/internal/repositories"
	"alfredoptarigan/smart-ats/internal/services"
	"alfredoptarigan/smart-ats/internal/views"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize history database (optional)
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	var evalRepo repositories.EvaluationRepository
	if db != nil {
		evalRepo = repositories.NewEvaluationRepository(db)
		log.Println("✅ Repositories initialized successfully")
	}

	// Initialize services
	pdfParser := services.NewPDFParserService()
	uploadService := services.NewUploadService(cfg.Storage.MaxFileSize)

	schemaValidator, err := services.NewSchemaValidator()
	if err != nil {
		log.Fatalf("❌ Failed to build schema validator: %v", err)
	}
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. A missing key is shown on the page instead of
	// stopping the server.
	geminiService, configErr := services.NewGeminiService(cfg.Gemini)
	if configErr != nil {
		log.Printf("⚠️  Gemini AI unavailable: %v", configErr)
	} else {
		log.Printf("✅ Gemini AI initialized successfully (model %s)", cfg.Gemini.Model)
	}

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		evalRepo,
		geminiService,
		pdfParser,
		services.NewResponseNormalizer(),
		schemaValidator,
		configErr,
	)
	log.Println("✅ Evaluator service initialized")

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("❌ Failed to load templates: %v", err)
	}

	// Initialize Handlers
	app := newApp(int(cfg.Storage.MaxFileSize)+1<<20, routes{
		evaluate: handlers.NewEvaluationHandler(evaluatorService, uploadService, renderer),
		result:   handlers.NewResultHandler(evalRepo),
		health:   handlers.NewHealthHandler(evaluatorService, evalRepo != nil),
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Open http://localhost%s in your browser\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
