package api

import (
	"github.com/gofiber/fiber/v2"

	"wavechat/services"
)

func (s *Server) handleCreateGroup(c *fiber.Ctx) error {
	var req services.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	group, err := s.groups.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (s *Server) handleListGroups(c *fiber.Ctx) error {
	conversations, err := s.groups.ListGroups(currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(conversations)
}

func (s *Server) handleGroupMessages(c *fiber.Ctx) error {
	history, err := s.groups.Messages(currentUserID(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(history)
}

func (s *Server) handleSendGroupMessage(c *fiber.Ctx) error {
	var req services.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	message, err := s.groups.SendMessage(c.Context(), currentUserID(c), c.Params("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (s *Server) handleMarkGroupRead(c *fiber.Ctx) error {
	if err := s.groups.MarkRead(currentUserID(c), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleAddMember(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	group, err := s.groups.AddMember(currentUserID(c), c.Params("id"), req.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(group)
}

func (s *Server) handleRemoveMember(c *fiber.Ctx) error {
	group, err := s.groups.RemoveMember(currentUserID(c), c.Params("id"), c.Params("userId"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(group)
}

func (s *Server) handleUpdateGroup(c *fiber.Ctx) error {
	var req services.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	group, err := s.groups.UpdateInfo(c.Context(), currentUserID(c), c.Params("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(group)
}

func (s *Server) handleDeleteGroupPhoto(c *fiber.Ctx) error {
	group, err := s.groups.DeletePhoto(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(group)
}

func (s *Server) handleDeleteGroup(c *fiber.Ctx) error {
	if err := s.groups.Delete(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
