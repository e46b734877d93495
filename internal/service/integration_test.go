package service

import (
	"context"
	"sync"
	"testing"

	"agora/internal/database"
	"agora/internal/models"
	"agora/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type services struct {
	db       *gorm.DB
	users    *UserService
	posts    *PostService
	comments *CommentService
}

func newServices(t *testing.T) *services {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	return &services{
		db:       db,
		users:    NewUserService(userRepo),
		posts:    NewPostService(postRepo, userRepo),
		comments: NewCommentService(commentRepo, postRepo, userRepo),
	}
}

func (s *services) signIn(t *testing.T, name string) *models.User {
	t.Helper()
	res, err := s.users.SignIn(context.Background(), name)
	require.NoError(t, err)
	return res.User
}

func (s *services) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Unscoped().Model(model).Count(&n).Error)
	return n
}

func TestIntegration_InvalidCommunityPersistsNothing(t *testing.T) {
	s := newServices(t)
	alice := s.signIn(t, "alice")

	for _, community := range []models.Community{"", "Gaming", "food", "HISTORY"} {
		_, err := s.posts.Create(context.Background(), CreatePostInput{
			UserID:    alice.ID,
			Title:     "Hello",
			Community: community,
		})
		assertCode(t, err, models.CodeValidation)
	}
	assert.Zero(t, s.count(t, &models.Post{}))
}

func TestIntegration_DeleteOwnershipAndVisibility(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	owner := s.signIn(t, "owner")
	other := s.signIn(t, "other")

	post, err := s.posts.Create(ctx, CreatePostInput{UserID: owner.ID, Title: "Mine", Community: models.CommunityPets})
	require.NoError(t, err)

	_, err = s.posts.DeleteByID(ctx, post.ID, other.ID)
	assertCode(t, err, models.CodeUnauthorized)

	res, err := s.posts.DeleteByID(ctx, post.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, PostDeletedMessage, res.Message)

	all, err := s.posts.FindAll(ctx, models.PostFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	found, err := s.posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, found.DeletedAt.Valid)

	_, err = s.posts.DeleteByID(ctx, post.ID, owner.ID)
	assertCode(t, err, models.CodeNotFound)
}

func TestIntegration_SignInIsIdempotent(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	first, err := s.users.SignIn(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := s.users.SignIn(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, models.SignInExistingMessage, second.Message)
	assert.Equal(t, first.User.ID, second.User.ID)

	users, err := s.users.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestIntegration_ConcurrentSignInCreatesOneRow(t *testing.T) {
	s := newServices(t)

	const callers = 8
	ids := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.users.SignIn(context.Background(), "bob")
			errs[i] = err
			if err == nil {
				ids[i] = res.User.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int64(1), s.count(t, &models.User{}))
}

func TestIntegration_CommentCreateRequiresLiveReferences(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := s.signIn(t, "alice")

	live, err := s.posts.Create(ctx, CreatePostInput{UserID: alice.ID, Title: "Live", Community: models.CommunityFood})
	require.NoError(t, err)
	dead, err := s.posts.Create(ctx, CreatePostInput{UserID: alice.ID, Title: "Dead", Community: models.CommunityFood})
	require.NoError(t, err)
	_, err = s.posts.DeleteByID(ctx, dead.ID, alice.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		userID string
		postID string
	}{
		{"unknown author", uuid.NewString(), live.ID},
		{"unknown post", alice.ID, uuid.NewString()},
		{"soft-deleted post", alice.ID, dead.ID},
		{"both unknown", uuid.NewString(), uuid.NewString()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.comments.Create(ctx, CreateCommentInput{UserID: tt.userID, PostID: tt.postID, Description: "hi"})
			assertCode(t, err, models.CodeNotFound)
		})
	}
	assert.Zero(t, s.count(t, &models.Comment{}))
}

func TestIntegration_PostUpdateRoundTrip(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := s.signIn(t, "alice")

	post, err := s.posts.Create(ctx, CreatePostInput{
		UserID:      alice.ID,
		Title:       "Before",
		Description: "unchanged",
		Community:   models.CommunityExercise,
	})
	require.NoError(t, err)

	_, err = s.posts.Update(ctx, post.ID, UpdatePostInput{UserID: alice.ID, Title: ptr("X")})
	require.NoError(t, err)

	found, err := s.posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", found.Title)
	assert.Equal(t, "unchanged", found.Description)
	assert.Equal(t, models.CommunityExercise, found.Community)
	assert.Equal(t, alice.ID, found.UserID)
	assert.False(t, found.DeletedAt.Valid)
	assert.True(t, found.CreatedAt.Equal(post.CreatedAt))
}

func TestIntegration_UpdateSoftDeletedPost(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := s.signIn(t, "alice")

	post, err := s.posts.Create(ctx, CreatePostInput{UserID: alice.ID, Title: "Old", Community: models.CommunityHistory})
	require.NoError(t, err)
	_, err = s.posts.DeleteByID(ctx, post.ID, alice.ID)
	require.NoError(t, err)

	updated, err := s.posts.Update(ctx, post.ID, UpdatePostInput{UserID: alice.ID, Description: ptr("archived")})
	require.NoError(t, err)
	assert.Equal(t, "archived", updated.Description)
	assert.True(t, updated.DeletedAt.Valid)
}

func TestIntegration_AliceScenario(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice := s.signIn(t, "alice")
	post, err := s.posts.Create(ctx, CreatePostInput{UserID: alice.ID, Title: "Hello", Community: models.CommunityFood})
	require.NoError(t, err)

	comment, err := s.comments.Create(ctx, CreateCommentInput{UserID: alice.ID, PostID: post.ID, Description: "nice"})
	require.NoError(t, err)
	require.NotNil(t, comment.User)
	assert.Equal(t, "alice", comment.User.Username)

	comments, err := s.comments.FindByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Description)

	_, err = s.posts.DeleteByID(ctx, post.ID, alice.ID)
	require.NoError(t, err)

	comments, err = s.comments.FindByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	found, err := s.comments.FindByID(ctx, comment.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Post)
	assert.True(t, found.Post.DeletedAt.Valid)
}

func TestIntegration_CommentUpdateAndHardDelete(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := s.signIn(t, "alice")

	post, err := s.posts.Create(ctx, CreatePostInput{UserID: alice.ID, Title: "Thread", Community: models.CommunityOthers})
	require.NoError(t, err)
	comment, err := s.comments.Create(ctx, CreateCommentInput{UserID: alice.ID, PostID: post.ID, Description: "first"})
	require.NoError(t, err)

	updated, err := s.comments.Update(ctx, comment.ID, UpdateCommentInput{Description: ptr("  second ")})
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Description)

	_, err = s.comments.Update(ctx, uuid.NewString(), UpdateCommentInput{Description: ptr("x")})
	assertCode(t, err, models.CodeNotFound)

	_, err = s.comments.DeleteByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Zero(t, s.count(t, &models.Comment{}))

	_, err = s.comments.DeleteByID(ctx, comment.ID)
	assertCode(t, err, models.CodeNotFound)

	_, err = s.comments.FindByID(ctx, comment.ID)
	assertCode(t, err, models.CodeNotFound)
}
