package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Specifications is a free-form key/value spec table stored as a jsonb column.
type Specifications map[string]string

func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *Specifications) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("specifications: unsupported column type %T", value)
	}
}

// Product represents a product in the catalog.
// Every product belongs to exactly one category; the slug is its external lookup key.
// Rating and ReviewCount are display-only aggregates written by the seeder.
type Product struct {
	ID             uint                `gorm:"primaryKey"`
	CategoryID     uint                `gorm:"not null;index"`
	Category       Category            `gorm:"foreignKey:CategoryID"`
	Name           string              `gorm:"not null"`
	Slug           string              `gorm:"uniqueIndex;not null"`
	Description    string              `gorm:"not null"`
	Price          decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	OriginalPrice  decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Images         pq.StringArray      `gorm:"type:text[];not null"`
	IsFeatured     bool                `gorm:"not null;default:false"`
	Specifications Specifications      `gorm:"type:jsonb"`
	Stock          int                 `gorm:"not null;default:0"`
	Rating         decimal.NullDecimal `gorm:"type:decimal(3,2)"`
	ReviewCount    *int
}

func (p *Product) TableName() string {
	return "products"
}
