package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product is the canonical catalog listing. PricePaise is the authoritative
// unit price; checkout verifies client-submitted prices against it.
type Product struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	SKU                 string         `gorm:"column:sku;not null;uniqueIndex"`
	Name                string         `gorm:"column:name;not null"`
	Slug                string         `gorm:"column:slug;not null;uniqueIndex"`
	Description         *string        `gorm:"column:description"`
	Category            string         `gorm:"column:category;not null;index"`
	PricePaise          int64          `gorm:"column:price_paise;not null"`
	CompareAtPricePaise *int64         `gorm:"column:compare_at_price_paise"`
	ImageURLs           pq.StringArray `gorm:"column:image_urls;type:text[]"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true"`
	IsFeatured          bool           `gorm:"column:is_featured;not null;default:false"`
	Specifications      []ProductSpec  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductSpec is one normalized specification row. The catalog layer stores
// every product's specs in this single shape so downstream consumers (the
// comparison table in particular) never sniff alternate structures.
type ProductSpec struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Value     string    `gorm:"column:value;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
}

func (s *ProductSpec) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
