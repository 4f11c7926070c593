package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/enums"
)

// Inquiry is a contact-form submission handled from the admin surface.
type Inquiry struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name      string              `gorm:"column:name;not null"`
	Email     string              `gorm:"column:email;not null"`
	Phone     *string             `gorm:"column:phone"`
	Subject   string              `gorm:"column:subject;not null"`
	Message   string              `gorm:"column:message;not null"`
	Status    enums.InquiryStatus `gorm:"column:status;not null;default:'open';index"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
