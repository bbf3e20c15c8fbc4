package api

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"wavechat/errors"
)

// httpStatus maps domain sentinels onto the error taxonomy: validation,
// authorization and conflict are caller faults; anything unknown is a
// persistence or upstream fault.
func httpStatus(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case stderrors.Is(err, errors.ErrNotAdmin),
		stderrors.Is(err, errors.ErrAdminRemoval):
		return fiber.StatusForbidden
	case stderrors.Is(err, errors.ErrGroupNotFound),
		stderrors.Is(err, errors.ErrUserNotFound):
		return fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrAlreadyMember),
		stderrors.Is(err, errors.ErrNotMember),
		stderrors.Is(err, errors.ErrUserAlreadyExists):
		return fiber.StatusConflict
	case stderrors.Is(err, errors.ErrEmptyPayload),
		stderrors.Is(err, errors.ErrMissingName),
		stderrors.Is(err, errors.ErrMissingMembers),
		stderrors.Is(err, errors.ErrInvalidPassword),
		stderrors.Is(err, errors.ErrInvalidRequest),
		stderrors.Is(err, errors.ErrNoGroupPhoto),
		stderrors.Is(err, errors.ErrUploadFailed):
		return fiber.StatusBadRequest
	case stderrors.Is(err, errors.ErrUploadUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// fail maps the error to a status code. Server-side faults are logged and
// their internals hidden; the caller only sees which subsystem failed.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := httpStatus(err)
	switch status {
	case fiber.StatusInternalServerError:
		s.log.Error("request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	case fiber.StatusBadGateway:
		s.log.Error("upstream failure", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{"error": errors.ErrUploadUnavailable.Error()})
	default:
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
}
