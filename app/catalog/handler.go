package catalog

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rinlabel/storefront/app/api"
	"github.com/rinlabel/storefront/contract"
	"github.com/rinlabel/storefront/models"
)

type ProductProvider interface {
	GetFilteredProducts(filters models.ProductFilters) ([]models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
	log  zerolog.Logger
}

func NewCatalogHandler(r ProductProvider, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log,
	}
}

// HandleList serves GET /api/products. The category, featured and search
// query params combine with logical AND; with none supplied every product is
// returned.
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := models.ProductFilters{
		CategorySlug: query.Get("category"),
		Featured:     query.Get("featured") == "true",
		Search:       query.Get("search"),
	}

	res, err := h.repo.GetFilteredProducts(filters)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list products")
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	products := make([]contract.Product, len(res))
	for i, p := range res {
		products[i] = contract.FromProduct(p)
	}

	api.JSON(w, http.StatusOK, products)
}

// HandleGetBySlug serves GET /api/products/{slug}.
func (h *CatalogHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	product, err := h.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		h.log.Error().Err(err).Str("slug", slug).Msg("failed to get product")
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.JSON(w, http.StatusOK, contract.FromProduct(*product))
}
