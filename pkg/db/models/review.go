package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer rating for one product. Reviews are created pending
// and only surface publicly once approved by moderation.
type Review struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	AuthorName   string    `gorm:"column:author_name;not null"`
	Rating       int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	Title        string    `gorm:"column:title;not null"`
	Content      string    `gorm:"column:content;not null"`
	IsApproved   bool      `gorm:"column:is_approved;not null;default:false;index"`
	IsVerified   bool      `gorm:"column:is_verified;not null;default:false"`
	IsFeatured   bool      `gorm:"column:is_featured;not null;default:false"`
	HelpfulCount int       `gorm:"column:helpful_count;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
