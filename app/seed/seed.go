// Package seed populates the catalog on first run. It is triggered from the
// process entrypoint behind configuration, never by a request path.
package seed

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rinlabel/storefront/models"
)

type CategoryStore interface {
	CountCategories() (int64, error)
	CreateCategory(category *models.Category) error
}

type ProductStore interface {
	CreateProduct(product *models.Product) error
}

type Seeder struct {
	categories CategoryStore
	products   ProductStore
	log        zerolog.Logger
}

func New(categories CategoryStore, products ProductStore, log zerolog.Logger) *Seeder {
	return &Seeder{
		categories: categories,
		products:   products,
		log:        log,
	}
}

// Run inserts the starter catalog when the categories table is empty.
// Running against a non-empty table is a no-op, so the seeder is idempotent.
func (s *Seeder) Run() error {
	count, err := s.categories.CountCategories()
	if err != nil {
		return fmt.Errorf("seed: count categories: %w", err)
	}
	if count > 0 {
		s.log.Debug().Int64("categories", count).Msg("catalog already seeded")
		return nil
	}

	men := &models.Category{
		Name:        "Men's Collection",
		Slug:        "men",
		Description: "Timeless essentials for the modern man.",
		ImageURL:    "https://images.unsplash.com/photo-1490578474895-699cd4e2cf59?q=80&w=2071&auto=format&fit=crop",
	}
	women := &models.Category{
		Name:        "Women's Collection",
		Slug:        "women",
		Description: "Elegant designs for every occasion.",
		ImageURL:    "https://images.unsplash.com/photo-1483985988355-763728e1935b?q=80&w=2070&auto=format&fit=crop",
	}
	accessories := &models.Category{
		Name:        "Accessories",
		Slug:        "accessories",
		Description: "The finishing touches.",
		ImageURL:    "https://images.unsplash.com/photo-1523293182086-7651a899d37f?q=80&w=2070&auto=format&fit=crop",
	}
	for _, category := range []*models.Category{men, women, accessories} {
		if err := s.categories.CreateCategory(category); err != nil {
			return fmt.Errorf("seed: create category %q: %w", category.Slug, err)
		}
	}

	oxfordReviews := 24
	watchReviews := 57
	products := []*models.Product{
		{
			CategoryID:  men.ID,
			Name:        "The Classic Oxford",
			Slug:        "classic-oxford-shirt",
			Description: "A staple in every wardrobe. Crafted from premium Italian cotton with a perfect tailored fit.",
			Price:       decimal.RequireFromString("120.00"),
			Images:      []string{"https://images.unsplash.com/photo-1596755094514-f87e34085b2c?q=80&w=1976&auto=format&fit=crop"},
			IsFeatured:  true,
			Specifications: models.Specifications{
				"Material": "100% Cotton",
				"Fit":      "Tailored",
				"Care":     "Machine Wash",
			},
			Stock:       50,
			Rating:      decimal.NewNullDecimal(decimal.RequireFromString("4.6")),
			ReviewCount: &oxfordReviews,
		},
		{
			CategoryID:  men.ID,
			Name:        "Merino Wool Sweater",
			Slug:        "merino-wool-sweater",
			Description: "Ultra-soft merino wool sweater perfect for layering.",
			Price:       decimal.RequireFromString("185.00"),
			Images:      []string{"https://images.unsplash.com/photo-1610652492500-ded49ceeb378?q=80&w=1974&auto=format&fit=crop"},
			Specifications: models.Specifications{
				"Material": "100% Merino Wool",
				"Fit":      "Regular",
				"Origin":   "Italy",
			},
			Stock: 30,
		},
		{
			CategoryID:  women.ID,
			Name:        "Silk Evening Dress",
			Slug:        "silk-evening-dress",
			Description: "Flowing silk silhouette that captures elegance and grace.",
			Price:       decimal.RequireFromString("450.00"),
			Images:      []string{"https://images.unsplash.com/photo-1566174053879-31528523f8ae?q=80&w=1908&auto=format&fit=crop"},
			IsFeatured:  true,
			Specifications: models.Specifications{
				"Material": "100% Silk",
				"Fit":      "Relaxed",
				"Care":     "Dry Clean Only",
			},
			Stock: 15,
		},
		{
			CategoryID:    accessories.ID,
			Name:          "Minimalist Leather Watch",
			Slug:          "leather-watch",
			Description:   "A timeless timepiece with a genuine leather strap and minimal dial.",
			Price:         decimal.RequireFromString("220.00"),
			OriginalPrice: decimal.NewNullDecimal(decimal.RequireFromString("260.00")),
			Images:        []string{"https://images.unsplash.com/photo-1524805444758-089113d48a6d?q=80&w=1976&auto=format&fit=crop"},
			IsFeatured:    true,
			Specifications: models.Specifications{
				"Movement":        "Quartz",
				"Strap":           "Genuine Leather",
				"Water Resistant": "3ATM",
			},
			Stock:       100,
			Rating:      decimal.NewNullDecimal(decimal.RequireFromString("4.8")),
			ReviewCount: &watchReviews,
		},
	}
	for _, product := range products {
		if err := s.products.CreateProduct(product); err != nil {
			return fmt.Errorf("seed: create product %q: %w", product.Slug, err)
		}
	}

	s.log.Info().Int("categories", 3).Int("products", len(products)).Msg("seeded catalog")
	return nil
}
