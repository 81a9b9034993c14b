package models

// Category represents a product category.
// The slug is the external lookup key used in URLs; the numeric ID stays internal.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
	ImageURL    string `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
