package api

import (
	"github.com/gofiber/fiber/v2"

	"wavechat/auth"
)

type authResponse struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	user, token, err := s.auth.Register(req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{User: user, Token: string(token)})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	user, token, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(authResponse{User: user, Token: string(token)})
}

// handleCheckEmail backs the first step of the forgot-password flow.
func (s *Server) handleCheckEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	if err := s.auth.CheckEmail(req.Email); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"exists": true})
}

func (s *Server) handleResetPassword(c *fiber.Ctx) error {
	var req auth.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	if err := s.auth.ResetPassword(req); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

func (s *Server) handleUpdateProfilePic(c *fiber.Ctx) error {
	var req struct {
		Pic string `json:"pic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	user, err := s.auth.UpdateProfilePic(c.Context(), currentUserID(c), req.Pic)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(user)
}
