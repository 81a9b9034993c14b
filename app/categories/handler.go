package categories

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rinlabel/storefront/app/api"
	"github.com/rinlabel/storefront/contract"
	"github.com/rinlabel/storefront/models"
)

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
}

type CategoryHandler struct {
	repo CategoryProvider
	log  zerolog.Logger
}

func NewCategoryHandler(r CategoryProvider, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo: r,
		log:  log,
	}
}

// HandleGetAll serves GET /api/categories.
func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list categories")
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]contract.Category, len(categories))
	for i, c := range categories {
		response[i] = contract.FromCategory(c)
	}

	api.JSON(w, http.StatusOK, response)
}

// HandleGetBySlug serves GET /api/categories/{slug}.
func (h *CategoryHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	category, err := h.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusNotFound, "Category not found")
			return
		}
		h.log.Error().Err(err).Str("slug", slug).Msg("failed to get category")
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.JSON(w, http.StatusOK, contract.FromCategory(*category))
}
