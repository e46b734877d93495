package service

import (
	"context"
	"log/slog"
	"strings"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/observability"
	"agora/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const PostDeletedMessage = "Post deleted successfully"

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID      string
	Title       string
	Description string
	Community   models.Community
}

// UpdatePostInput is a partial patch: nil fields are left untouched.
type UpdatePostInput struct {
	UserID      string
	Title       *string
	Description *string
	Community   *models.Community
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostService) FindAll(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.postRepo.List(ctx, filter)
}

func (s *PostService) FindByUserID(ctx context.Context, userID string, filter models.PostFilter) ([]*models.Post, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByUser(ctx, userID, filter)
}

// FindByID also returns soft-deleted posts.
func (s *PostService) FindByID(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Create", attribute.String("user.id", in.UserID))
	defer span.End()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if !in.Community.Valid() {
		return nil, models.NewValidationError(models.InvalidCommunityMessage())
	}

	owner, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("Invalid user")
		}
		span.SetError(err)
		return nil, err
	}

	post := &models.Post{
		Title:       title,
		Description: in.Description,
		Community:   in.Community,
		UserID:      owner.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}
	if post.ID == "" {
		return nil, models.NewInternalErrorMsg("Failed to save the post")
	}
	post.User = owner

	middleware.Logger.InfoContext(middleware.WithUserID(ctx, owner.ID), "post created",
		slog.String("post_id", post.ID),
		slog.String("community", string(post.Community)),
	)
	return post, nil
}

// DeleteByID soft-deletes a live post owned by actingUserID.
func (s *PostService) DeleteByID(ctx context.Context, id, actingUserID string) (*models.MessageResponse, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.DeleteByID", attribute.String("post.id", id))
	defer span.End()

	post, err := s.postRepo.GetLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actingUserID {
		return nil, models.NewUnauthorizedError("You are not authorized to delete this post")
	}

	if err := s.postRepo.SoftDelete(ctx, id); err != nil {
		span.SetError(err)
		return nil, err
	}

	middleware.Logger.InfoContext(middleware.WithUserID(ctx, actingUserID), "post soft-deleted",
		slog.String("post_id", id))
	return &models.MessageResponse{Message: PostDeletedMessage}, nil
}

// Update applies a partial patch. The post is resolved without the soft-delete
// filter, so a deleted post can still be patched by its owner.
func (s *PostService) Update(ctx context.Context, id string, in UpdatePostInput) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Update", attribute.String("post.id", id))
	defer span.End()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You are not authorized to update this post")
	}

	updates := make(map[string]any)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		updates["title"] = title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Community != nil {
		if !in.Community.Valid() {
			return nil, models.NewValidationError(models.InvalidCommunityMessage())
		}
		updates["community"] = string(*in.Community)
	}

	if len(updates) == 0 {
		return post, nil
	}
	if err := s.postRepo.Update(ctx, id, updates); err != nil {
		span.SetError(err)
		return nil, err
	}

	return s.postRepo.GetByID(ctx, id)
}

func normalizeFilter(filter models.PostFilter) (models.PostFilter, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Community != "" && !filter.Community.Valid() {
		return filter, models.NewValidationError(models.InvalidCommunityMessage())
	}
	return filter, nil
}
