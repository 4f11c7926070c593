package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

type stubRepo struct {
	approved []models.Review
	pending  []models.Review
	created  *models.Review
	known    map[uuid.UUID]bool
	helpful  map[uuid.UUID]int
	err      error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		known:   map[uuid.UUID]bool{},
		helpful: map[uuid.UUID]int{},
	}
}

func (s *stubRepo) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	return s.approved, s.err
}

func (s *stubRepo) ListPending(ctx context.Context) ([]models.Review, error) {
	return s.pending, s.err
}

func (s *stubRepo) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = review
	return review, nil
}

func (s *stubRepo) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	if !s.known[id] {
		return gorm.ErrRecordNotFound
	}
	return s.err
}

func (s *stubRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if !s.known[id] {
		return gorm.ErrRecordNotFound
	}
	return s.err
}

func (s *stubRepo) IncrementHelpful(ctx context.Context, id uuid.UUID) error {
	if !s.known[id] {
		return gorm.ErrRecordNotFound
	}
	s.helpful[id]++
	return nil
}

func TestListForProductReturnsSummary(t *testing.T) {
	repo := newStubRepo()
	repo.approved = []models.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 4},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got, err := svc.ListForProduct(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListForProduct: %v", err)
	}
	if len(got.Reviews) != 3 {
		t.Fatalf("reviews: got %d, want 3", len(got.Reviews))
	}
	if got.Summary.AverageRating != 4.3 {
		t.Fatalf("average: got %v, want 4.3", got.Summary.AverageRating)
	}
	if got.Summary.Distribution[4] != 2 {
		t.Fatalf("bucket 4: got %d, want 2", got.Summary.Distribution[4])
	}
}

func TestCreateStoresPendingReview(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.Create(context.Background(), CreateInput{
		ProductID:  uuid.New(),
		AuthorName: "  Priya  ",
		Rating:     4,
		Title:      "Solid build",
		Content:    "Works as described.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.IsApproved {
		t.Fatal("new review must start unapproved")
	}
	if created.AuthorName != "Priya" {
		t.Fatalf("author: got %q, want trimmed name", created.AuthorName)
	}
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), CreateInput{
			ProductID:  uuid.New(),
			AuthorName: "A",
			Rating:     rating,
			Title:      "t",
			Content:    "c",
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: got %v, want validation error", rating, err)
		}
	}
}

func TestApproveUnknownReviewIsNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	approveErr := svc.Approve(context.Background(), uuid.New())
	typed := pkgerrors.As(approveErr)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found error", approveErr)
	}
}

func TestMarkHelpfulIncrements(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.known[id] = true

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.MarkHelpful(context.Background(), id); err != nil {
		t.Fatalf("MarkHelpful: %v", err)
	}
	if err := svc.MarkHelpful(context.Background(), id); err != nil {
		t.Fatalf("MarkHelpful: %v", err)
	}
	if repo.helpful[id] != 2 {
		t.Fatalf("helpful count: got %d, want 2", repo.helpful[id])
	}
}
