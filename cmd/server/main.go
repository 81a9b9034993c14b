package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rinlabel/storefront/app/api"
	"github.com/rinlabel/storefront/app/catalog"
	"github.com/rinlabel/storefront/app/categories"
	"github.com/rinlabel/storefront/app/middleware"
	"github.com/rinlabel/storefront/app/seed"
	"github.com/rinlabel/storefront/config"
	"github.com/rinlabel/storefront/models"
)

func main() {
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate failed")
	}

	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)

	if cfg.SeedOnStart {
		if err := seed.New(categoriesRepo, productsRepo, logger).Run(); err != nil {
			logger.Fatal().Err(err).Msg("seeding failed")
		}
	}

	categoryHandler := categories.NewCategoryHandler(categoriesRepo, logger)
	catalogHandler := catalog.NewCatalogHandler(productsRepo, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("GET /api/categories/{slug}", categoryHandler.HandleGetBySlug)
	mux.HandleFunc("GET /api/products", catalogHandler.HandleList)
	mux.HandleFunc("GET /api/products/{slug}", catalogHandler.HandleGetBySlug)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handler := middleware.Chain(
		mux,
		middleware.Recover(logger),
		middleware.RequestLogger(logger),
		middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info().Str("addr", cfg.Addr).Msg("starting storefront API")
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
