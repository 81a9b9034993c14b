package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilters restricts GetFilteredProducts. All supplied filters combine
// with logical AND; zero values mean "no restriction".
type ProductFilters struct {
	CategorySlug string
	Featured     bool
	Search       string
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// applyFilters accumulates one Where clause per active filter. Each clause is
// appended to the previous ones, so conditions can only narrow the result,
// never replace an earlier condition. categoryID of zero means the category
// filter is inactive.
func applyFilters(query *gorm.DB, categoryID uint, filters ProductFilters) *gorm.DB {
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if filters.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if filters.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filters.Search)+"%")
	}
	return query
}

// GetFilteredProducts returns the products matching every supplied filter.
// A category slug that resolves to no category yields an empty result, not an
// error. The slug is resolved to an id before the product query runs.
func (r *ProductsRepository) GetFilteredProducts(filters ProductFilters) ([]Product, error) {
	var categoryID uint
	if filters.CategorySlug != "" {
		var category Category
		err := r.db.Where("slug = ?", filters.CategorySlug).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Product{}, nil
		}
		if err != nil {
			return nil, err
		}
		categoryID = category.ID
	}

	var products []Product
	if err := applyFilters(r.db.Model(&Product{}), categoryID, filters).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetBySlug(slug string) (*Product, error) {
	var product Product
	if err := r.db.
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// CreateProduct inserts a product. Only the seeder writes products.
func (r *ProductsRepository) CreateProduct(product *Product) error {
	return r.db.Create(product).Error
}
