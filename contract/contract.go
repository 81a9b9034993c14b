// Package contract holds the wire shapes shared by the HTTP API and its
// clients. The server encodes responses from these types and the client
// validates decoded payloads against them before handing data to callers.
package contract

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rinlabel/storefront/models"
)

type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl"`
}

// Product mirrors the catalog row. Money travels as fixed-point strings with
// two fractional digits so no binary floating-point rounding ever happens on
// the wire.
type Product struct {
	ID             uint              `json:"id"`
	CategoryID     uint              `json:"categoryId"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Price          string            `json:"price"`
	OriginalPrice  *string           `json:"originalPrice,omitempty"`
	Images         []string          `json:"images"`
	IsFeatured     bool              `json:"isFeatured"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Stock          int               `json:"stock"`
	Rating         *string           `json:"rating,omitempty"`
	ReviewCount    *int              `json:"reviewCount,omitempty"`
}

func FromCategory(c models.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func FromProduct(p models.Product) Product {
	product := Product{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		Images:         p.Images,
		IsFeatured:     p.IsFeatured,
		Specifications: p.Specifications,
		Stock:          p.Stock,
		ReviewCount:    p.ReviewCount,
	}
	if p.OriginalPrice.Valid {
		s := p.OriginalPrice.Decimal.StringFixed(2)
		product.OriginalPrice = &s
	}
	if p.Rating.Valid {
		s := p.Rating.Decimal.String()
		product.Rating = &s
	}
	return product
}

func (c Category) Validate() error {
	if c.ID == 0 {
		return errors.New("category: missing id")
	}
	if c.Slug == "" {
		return errors.New("category: missing slug")
	}
	if c.Name == "" {
		return errors.New("category: missing name")
	}
	if c.ImageURL == "" {
		return errors.New("category: missing imageUrl")
	}
	return nil
}

func (p Product) Validate() error {
	if p.ID == 0 {
		return errors.New("product: missing id")
	}
	if p.CategoryID == 0 {
		return errors.New("product: missing categoryId")
	}
	if p.Slug == "" {
		return errors.New("product: missing slug")
	}
	if p.Name == "" {
		return errors.New("product: missing name")
	}
	if len(p.Images) == 0 {
		return errors.New("product: images must not be empty")
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return fmt.Errorf("product: invalid price %q", p.Price)
	}
	if price.IsNegative() {
		return fmt.Errorf("product: negative price %q", p.Price)
	}
	if p.OriginalPrice != nil {
		if _, err := decimal.NewFromString(*p.OriginalPrice); err != nil {
			return fmt.Errorf("product: invalid originalPrice %q", *p.OriginalPrice)
		}
	}
	return nil
}

// OnSale reports whether the product carries a markdown, meaning the original
// price is present and strictly greater than the current price.
func (p Product) OnSale() bool {
	if p.OriginalPrice == nil {
		return false
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return false
	}
	original, err := decimal.NewFromString(*p.OriginalPrice)
	if err != nil {
		return false
	}
	return original.GreaterThan(price)
}
