package inquiries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	"github.com/shopkartlabs/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

type stubRepo struct {
	created *models.Inquiry
	known   map[uuid.UUID]enums.InquiryStatus
}

func newStubRepo() *stubRepo {
	return &stubRepo{known: map[uuid.UUID]enums.InquiryStatus{}}
}

func (s *stubRepo) Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	s.created = inquiry
	return inquiry, nil
}

func (s *stubRepo) List(ctx context.Context, status *enums.InquiryStatus) ([]models.Inquiry, error) {
	return nil, nil
}

func (s *stubRepo) SetStatus(ctx context.Context, id uuid.UUID, status enums.InquiryStatus) error {
	if _, ok := s.known[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.known[id] = status
	return nil
}

func TestCreateOpensInquiry(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.Create(context.Background(), CreateInput{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Subject: "Bulk order",
		Message: "Do you ship to Pune?",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != enums.InquiryStatusOpen {
		t.Fatalf("status: got %s, want open", created.Status)
	}
}

func TestCreateRejectsBadEmail(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, createErr := svc.Create(context.Background(), CreateInput{
		Name:    "Ravi",
		Email:   "nope",
		Subject: "s",
		Message: "m",
	})
	typed := pkgerrors.As(createErr)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", createErr)
	}
}

func TestResolveMarksResolved(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.known[id] = enums.InquiryStatusOpen

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.Resolve(context.Background(), id); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if repo.known[id] != enums.InquiryStatusResolved {
		t.Fatalf("status: got %s, want resolved", repo.known[id])
	}
}

func TestResolveUnknownIsNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	resolveErr := svc.Resolve(context.Background(), uuid.New())
	typed := pkgerrors.As(resolveErr)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", resolveErr)
	}
}
