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
	"golang.org/x/sync/errgroup"
)

const CommentDeletedMessage = "Comment deleted successfully"

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID      string
	PostID      string
	Description string
}

// UpdateCommentInput is a partial patch; only the description can change.
type UpdateCommentInput struct {
	Description *string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// FindByID does not return soft-deleted comments.
func (s *CommentService) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// Create validates that the author exists and the post is live before writing.
// The two lookups are independent and run concurrently.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	span, ctx := observability.NewSpan(ctx, "CommentService.Create",
		attribute.String("user.id", in.UserID),
		attribute.String("post.id", in.PostID),
	)
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.userRepo.GetByID(gctx, in.UserID)
		return err
	})
	g.Go(func() error {
		_, err := s.postRepo.GetLiveByID(gctx, in.PostID)
		return err
	})
	if err := g.Wait(); err != nil {
		span.SetError(err)
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, models.NewValidationError("Comment description cannot be empty")
	}

	comment := &models.Comment{
		Description: description,
		UserID:      in.UserID,
		PostID:      in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		span.SetError(err)
		return nil, err
	}
	if comment.ID == "" {
		return nil, models.NewInternalErrorMsg("Failed to save the comment")
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Update patches the description of any comment, soft-deleted or not.
// There is no ownership check.
func (s *CommentService) Update(ctx context.Context, id string, in UpdateCommentInput) (*models.Comment, error) {
	span, ctx := observability.NewSpan(ctx, "CommentService.Update", attribute.String("comment.id", id))
	defer span.End()

	comment, err := s.commentRepo.GetByIDUnscoped(ctx, id)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewNotFoundMessage("Comment not found")
		}
		return nil, err
	}

	if in.Description == nil {
		return comment, nil
	}
	description := strings.TrimSpace(*in.Description)
	if description == "" {
		return nil, models.NewValidationError("Comment description cannot be empty")
	}

	if err := s.commentRepo.Update(ctx, id, map[string]any{"description": description}); err != nil {
		span.SetError(err)
		return nil, err
	}

	return s.commentRepo.GetByIDUnscoped(ctx, id)
}

// DeleteByID removes the comment row permanently.
func (s *CommentService) DeleteByID(ctx context.Context, id string) (*models.MessageResponse, error) {
	span, ctx := observability.NewSpan(ctx, "CommentService.DeleteByID", attribute.String("comment.id", id))
	defer span.End()

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if !models.HasCode(err, models.CodeNotFound) {
			span.SetError(err)
		}
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "comment deleted", slog.String("comment_id", id))
	return &models.MessageResponse{Message: CommentDeletedMessage}, nil
}

// FindByPostID lists live comments of a post, newest first. The post itself
// may be soft-deleted.
func (s *CommentService) FindByPostID(ctx context.Context, postID string) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
