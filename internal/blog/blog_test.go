package blog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

type stubRepo struct {
	posts map[string]*models.BlogPost
}

func newStubRepo() *stubRepo {
	return &stubRepo{posts: map[string]*models.BlogPost{}}
}

func (s *stubRepo) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, post := range s.posts {
		if post.IsPublished {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (s *stubRepo) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, post := range s.posts {
		out = append(out, *post)
	}
	return out, nil
}

func (s *stubRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, ok := s.posts[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (s *stubRepo) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	s.posts[post.Slug] = post
	return post, nil
}

func (s *stubRepo) Update(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	s.posts[post.Slug] = post
	return post, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for slug, post := range s.posts {
		if post.ID == id {
			delete(s.posts, slug)
		}
	}
	return nil
}

func TestCreatePublishedPostStampsPublishedAt(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.Create(context.Background(), UpsertInput{
		Title:   "Care guide",
		Slug:    "care-guide",
		Body:    "...",
		Publish: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsPublished || created.PublishedAt == nil {
		t.Fatal("published post must carry a publish timestamp")
	}
}

func TestCreateDraftStaysUnpublished(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.Create(context.Background(), UpsertInput{
		Title: "Draft",
		Slug:  "draft",
		Body:  "...",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.IsPublished || created.PublishedAt != nil {
		t.Fatal("draft must stay unpublished")
	}
}

func TestGetBySlugUnknownIsNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, getErr := svc.GetBySlug(context.Background(), "missing")
	typed := pkgerrors.As(getErr)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", getErr)
	}
}

func TestUpdateRepublishKeepsFirstTimestamp(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.Create(context.Background(), UpsertInput{
		Title:   "Care guide",
		Slug:    "care-guide",
		Body:    "...",
		Publish: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	first := *created.PublishedAt

	updated, err := svc.Update(context.Background(), "care-guide", UpsertInput{
		Title:   "Care guide v2",
		Slug:    "care-guide",
		Body:    "....",
		Publish: true,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(first) {
		t.Fatal("republishing must not move the original publish timestamp")
	}
}
