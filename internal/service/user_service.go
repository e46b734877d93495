// Package service holds the business rules for users, posts and comments.
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

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// FindByUsername returns (nil, nil) when nobody has the name.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// SignIn returns the user with the given name, creating it on first use.
// Two concurrent first sign-ins race on the unique username index; the loser
// gets CONFLICT from the insert and resolves to the winner's row.
func (s *UserService) SignIn(ctx context.Context, username string) (*models.SignInResult, error) {
	span, ctx := observability.NewSpan(ctx, "UserService.SignIn")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.signInFailed(span, err)
	}
	if existing != nil {
		return existingUser(existing), nil
	}

	user := &models.User{Username: username}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if !models.HasCode(err, models.CodeConflict) {
			return nil, s.signInFailed(span, err)
		}
		winner, lookupErr := s.userRepo.GetByUsername(ctx, username)
		if lookupErr != nil {
			return nil, s.signInFailed(span, lookupErr)
		}
		if winner == nil {
			return nil, s.signInFailed(span, err)
		}
		return existingUser(winner), nil
	}
	if user.ID == "" {
		return nil, s.signInFailed(span, models.NewInternalErrorMsg("Failed to create user"))
	}

	span.AddAttributes(attribute.String("user.id", user.ID))
	middleware.SignIns.WithLabelValues("created").Inc()
	middleware.Logger.InfoContext(middleware.WithUserID(ctx, user.ID), "user created",
		slog.String("username", user.Username))

	return &models.SignInResult{
		Message: models.SignInCreatedMessage,
		User:    user,
		Created: true,
	}, nil
}

func (s *UserService) signInFailed(span *observability.Span, err error) error {
	span.SetError(err)
	middleware.SignIns.WithLabelValues("error").Inc()
	return err
}

func existingUser(user *models.User) *models.SignInResult {
	middleware.SignIns.WithLabelValues("existing").Inc()
	return &models.SignInResult{
		Message: models.SignInExistingMessage,
		User:    user,
		Created: false,
	}
}
