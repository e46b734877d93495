package repository

import (
	"context"
	"strings"

	"agora/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations.
// GetByID ignores soft deletion; every listing and GetLiveByID exclude deleted posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetLiveByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID string, filter models.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	SoftDelete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Unscoped().
		Preload("User").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, lookupError(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) GetLiveByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, lookupError(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	return r.find(applyPostFilter(r.db.WithContext(ctx), filter))
}

func (r *postRepository) ListByUser(ctx context.Context, userID string, filter models.PostFilter) ([]*models.Post, error) {
	return r.find(applyPostFilter(r.db.WithContext(ctx), filter).Where("posts.user_id = ?", userID))
}

func (r *postRepository) find(query *gorm.DB) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	if err := query.Preload("User").Order("posts.created_at DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Unscoped().
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

// applyPostFilter adds the community equality and case-insensitive title
// substring conditions. Search wildcards are matched literally.
func applyPostFilter(query *gorm.DB, filter models.PostFilter) *gorm.DB {
	if filter.Community != "" {
		query = query.Where("posts.community = ?", string(filter.Community))
	}
	if filter.Search != "" {
		query = query.Where("LOWER(posts.title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
