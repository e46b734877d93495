package server

import (
	"agora/internal/middleware"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	UserID      string `json:"userId"`
	PostID      string `json:"postId"`
	Description string `json:"description"`
}

type updateCommentRequest struct {
	Description *string `json:"description"`
}

// GetPostComments lists the live comments of a post, newest first.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.FindByPostID(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// GetComment returns a live comment by id.
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.FindByID(c.UserContext(), commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// CreateComment adds a comment to a live post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx := middleware.WithUserID(c.UserContext(), req.UserID)
	comment, err := s.commentService.Create(ctx, service.CreateCommentInput{
		UserID:      req.UserID,
		PostID:      req.PostID,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment changes a comment's description.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req updateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.Update(c.UserContext(), commentID, service.UpdateCommentInput{
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment permanently removes a comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	res, err := s.commentService.DeleteByID(c.UserContext(), commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
