package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"wavechat/services"
)

func (s *Server) handleSidebarUsers(c *fiber.Ctx) error {
	conversations, err := s.messages.SidebarUsers(currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(conversations)
}

func (s *Server) handleConversation(c *fiber.Ctx) error {
	history, err := s.messages.Conversation(currentUserID(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(history)
}

func (s *Server) handleSendDirect(c *fiber.Ctx) error {
	var req services.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	message, err := s.messages.SendDirect(c.Context(), currentUserID(c), c.Params("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (s *Server) handleMarkRead(c *fiber.Ctx) error {
	if err := s.messages.MarkRead(currentUserID(c), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	hits, err := s.messages.Search(c.Context(), currentUserID(c), c.Query("q"), limit)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(hits)
}
