package service

import (
	"context"
	"errors"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	listFn          func(context.Context) ([]models.User, error)
	getByIDFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn: func(_ context.Context) ([]models.User, error) { return []models.User{}, nil },
		getByIDFn: func(_ context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Username: "user-" + id}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = "generated"
			return nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, string) (*models.Post, error)
	getLiveByIDFn func(context.Context, string) (*models.Post, error)
	listFn        func(context.Context, models.PostFilter) ([]*models.Post, error)
	listByUserFn  func(context.Context, string, models.PostFilter) ([]*models.Post, error)
	updateFn      func(context.Context, string, map[string]any) error
	softDeleteFn  func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetLiveByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getLiveByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID string, filter models.PostFilter) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, filter)
}
func (s *postRepoStub) Update(ctx context.Context, id string, updates map[string]any) error {
	return s.updateFn(ctx, id, updates)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id string) error {
	return s.softDeleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = "post-1"
			return nil
		},
		getByIDFn: func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id, UserID: "owner"}, nil
		},
		getLiveByIDFn: func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id, UserID: "owner"}, nil
		},
		listFn: func(_ context.Context, _ models.PostFilter) ([]*models.Post, error) { return []*models.Post{}, nil },
		listByUserFn: func(_ context.Context, _ string, _ models.PostFilter) ([]*models.Post, error) {
			return []*models.Post{}, nil
		},
		updateFn:     func(_ context.Context, _ string, _ map[string]any) error { return nil },
		softDeleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn          func(context.Context, *models.Comment) error
	getByIDFn         func(context.Context, string) (*models.Comment, error)
	getByIDUnscopedFn func(context.Context, string) (*models.Comment, error)
	listByPostFn      func(context.Context, string) ([]*models.Comment, error)
	updateFn          func(context.Context, string, map[string]any) error
	deleteFn          func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByIDUnscoped(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDUnscopedFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, id string, updates map[string]any) error {
	return s.updateFn(ctx, id, updates)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = "comment-1"
			return nil
		},
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		getByIDUnscopedFn: func(_ context.Context, id string) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ string) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		updateFn:     func(_ context.Context, _ string, _ map[string]any) error { return nil },
		deleteFn:     func(_ context.Context, _ string) error { return nil },
	}
}

// assertCode asserts that err is an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func ptr[T any](v T) *T {
	return &v
}
