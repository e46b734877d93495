package server

import (
	"agora/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type signInRequest struct {
	Username string `json:"username"`
}

// GetUsers returns every user.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetUser returns a single user by id.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SignIn returns the named user, creating it on first use. A new user is
// answered with 201, an existing one with 200.
func (s *Server) SignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	res, err := s.userService.SignIn(c.UserContext(), req.Username)
	if err != nil {
		return respondError(c, err)
	}

	c.SetUserContext(middleware.WithUserID(c.UserContext(), res.User.ID))
	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(res)
}
