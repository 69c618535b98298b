package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go-pos-backoffice/internal/ai"
	"go-pos-backoffice/internal/audit"
	"go-pos-backoffice/internal/config"
	"go-pos-backoffice/internal/database"
	"go-pos-backoffice/internal/handlers"
	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/models"
	"go-pos-backoffice/internal/repository"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := database.Connect(cfg.DatabaseDSN); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	db := database.DB

	// Repositories and the audit side channel
	employeeRepo := repository.NewEmployeeRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	recorder := audit.NewRecorder(db, log.Logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(employeeRepo, recorder, cfg.JWTSecret)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo, recorder)
	supplierHandler := handlers.NewSupplierHandler(supplierRepo, recorder)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, recorder)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, recorder)
	saleHandler := handlers.NewSaleHandler(saleRepo, productRepo, recorder)
	reportHandler := handlers.NewReportHandler(saleRepo, recorder)

	var agent *ai.Agent
	if cfg.GeminiAPIKey != "" {
		agent = ai.NewAgent(productRepo, saleRepo, cfg.GeminiAPIKey)
	} else {
		log.Warn().Msg("POS_GEMINI_API_KEY not set, assistant disabled")
	}
	aiHandler := handlers.NewAIHandler(agent)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", authHandler.Login)

	// Only opens if we explicitly allow it in the environment
	if cfg.AllowRegistration {
		r.POST("/register", authHandler.Register)
		log.Warn().Msg("⚠️ Registration route is OPEN. Disable this in production!")
	} else {
		log.Info().Msg("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// VISIBLE TO STAFF & ADMIN: the cashier screens
		api.GET("/sales", saleHandler.List)
		api.POST("/sales", saleHandler.Create)
		api.GET("/sales/:id", saleHandler.Detail)
		api.GET("/sales/:id/json", saleHandler.DetailJSON)

		// ADMIN ONLY: the management screens
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/employees", employeeHandler.List)
			admin.POST("/employees", employeeHandler.Create)
			admin.GET("/employees/:id", employeeHandler.Detail)
			admin.PUT("/employees/:id", employeeHandler.Update)
			admin.DELETE("/employees/:id", employeeHandler.Delete)

			admin.GET("/suppliers", supplierHandler.List)
			admin.POST("/suppliers", supplierHandler.Create)
			admin.GET("/suppliers/:id", supplierHandler.Detail)
			admin.PUT("/suppliers/:id", supplierHandler.Update)
			admin.DELETE("/suppliers/:id", supplierHandler.Delete)

			admin.GET("/categories", categoryHandler.List)
			admin.POST("/categories", categoryHandler.Create)
			admin.GET("/categories/:id", categoryHandler.Detail)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.GET("/products", productHandler.List)
			admin.POST("/products", productHandler.Create)
			admin.GET("/products/:id", productHandler.Detail)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)

			admin.PUT("/sales/:id", saleHandler.Update)
			admin.DELETE("/sales/:id", saleHandler.Delete)
			admin.POST("/sales/bulk-delete", saleHandler.BulkDelete)

			admin.GET("/reports", reportHandler.Sales)
			admin.GET("/activity", reportHandler.Activity)
			admin.POST("/ask", aiHandler.Ask)
		}
	}

	log.Info().Msgf("🚀 Server starting on %s", cfg.BaseURL)
	if err := r.Run(cfg.HTTPAddress()); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
