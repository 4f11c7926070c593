package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// BlogPost backs the content side of the storefront.
type BlogPost struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Title       string         `gorm:"column:title;not null"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex"`
	Excerpt     *string        `gorm:"column:excerpt"`
	Body        string         `gorm:"column:body;not null"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`
	CoverURL    *string        `gorm:"column:cover_url"`
	IsPublished bool           `gorm:"column:is_published;not null;default:false;index"`
	PublishedAt *time.Time     `gorm:"column:published_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
