package server

import (
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Community   string `json:"community"`
}

type updatePostRequest struct {
	UserID      string  `json:"userId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Community   *string `json:"community"`
}

type actingUserRequest struct {
	UserID string `json:"userId"`
}

// GetPosts lists live posts, optionally filtered by ?search= and ?community=.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.FindAll(c.UserContext(), postFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetUserPosts lists a user's live posts with the same filters as GetPosts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.postService.FindByUserID(c.UserContext(), userID, postFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost returns a post by id, including soft-deleted posts.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.FindByID(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost creates a post owned by the user named in the body.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx := middleware.WithUserID(c.UserContext(), req.UserID)
	post, err := s.postService.Create(ctx, service.CreatePostInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Community:   models.Community(req.Community),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost applies a partial update on behalf of the owner.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req updatePostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	in := service.UpdatePostInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Community != nil {
		community := models.Community(*req.Community)
		in.Community = &community
	}

	ctx := middleware.WithUserID(c.UserContext(), req.UserID)
	post, err := s.postService.Update(ctx, postID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost soft-deletes a post. The acting user comes from the JSON body,
// or from ?userId= when the client cannot send a DELETE body.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req actingUserRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return nil
		}
	}
	if req.UserID == "" {
		req.UserID = c.Query("userId")
	}

	ctx := middleware.WithUserID(c.UserContext(), req.UserID)
	res, err := s.postService.DeleteByID(ctx, postID, req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
