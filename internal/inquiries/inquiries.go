package inquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	"github.com/shopkartlabs/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

// Repository persists contact-form inquiries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return nil, err
	}
	return inquiry, nil
}

// List returns inquiries newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status *enums.InquiryStatus) ([]models.Inquiry, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var rows []models.Inquiry
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status enums.InquiryStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type repository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error)
	List(ctx context.Context, status *enums.InquiryStatus) ([]models.Inquiry, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.InquiryStatus) error
}

// CreateInput is the public contact form.
type CreateInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Subject string  `json:"subject" validate:"required"`
	Message string  `json:"message" validate:"required"`
}

// Service exposes inquiry intake and admin triage.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Inquiry, error)
	List(ctx context.Context, status string) ([]models.Inquiry, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService builds the inquiry service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inquiry repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and a valid email are required")
	}
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject and message are required")
	}

	inquiry := &models.Inquiry{
		Name:    name,
		Email:   email,
		Phone:   input.Phone,
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  enums.InquiryStatusOpen,
	}
	created, err := s.repo.Create(ctx, inquiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inquiry")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, status string) ([]models.Inquiry, error) {
	var filter *enums.InquiryStatus
	if status != "" {
		parsed, err := enums.ParseInquiryStatus(status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		filter = &parsed
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inquiries")
	}
	return rows, nil
}

func (s *service) Resolve(ctx context.Context, id uuid.UUID) error {
	err := s.repo.SetStatus(ctx, id, enums.InquiryStatusResolved)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "inquiry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve inquiry")
	}
	return nil
}
