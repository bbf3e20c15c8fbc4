// Package api exposes the request/response surface and the realtime
// websocket endpoint.
package api

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"wavechat/realtime"
	"wavechat/services"
)

type Server struct {
	app         *fiber.App
	log         *slog.Logger
	auth        services.IAuthService
	messages    services.IMessageService
	groups      services.IGroupService
	registry    *realtime.Registry
	broadcaster realtime.IBroadcaster
	typing      *realtime.TypingCoordinator
}

func NewServer(
	log *slog.Logger,
	auth services.IAuthService,
	messages services.IMessageService,
	groups services.IGroupService,
	registry *realtime.Registry,
	broadcaster realtime.IBroadcaster,
	typing *realtime.TypingCoordinator,
	mediaRoot string,
) *Server {
	s := &Server{
		app:         fiber.New(fiber.Config{BodyLimit: 25 * 1024 * 1024}),
		log:         log,
		auth:        auth,
		messages:    messages,
		groups:      groups,
		registry:    registry,
		broadcaster: broadcaster,
		typing:      typing,
	}
	s.routes(mediaRoot)
	return s
}

func (s *Server) routes(mediaRoot string) {
	s.app.Static("/uploads", mediaRoot)

	api := s.app.Group("/api")
	api.Post("/auth/register", s.handleRegister)
	api.Post("/auth/login", s.handleLogin)
	api.Post("/auth/check-email", s.handleCheckEmail)
	api.Post("/auth/reset-password", s.handleResetPassword)
	api.Put("/auth/profile-pic", s.requireAuth, s.handleUpdateProfilePic)

	messages := api.Group("/messages", s.requireAuth)
	messages.Get("/users", s.handleSidebarUsers)
	messages.Get("/search", s.handleSearch)
	messages.Put("/mark-read/:id", s.handleMarkRead)
	messages.Get("/:id", s.handleConversation)
	messages.Post("/:id", s.handleSendDirect)

	groups := api.Group("/groups", s.requireAuth)
	groups.Post("/", s.handleCreateGroup)
	groups.Get("/", s.handleListGroups)
	groups.Get("/:id/messages", s.handleGroupMessages)
	groups.Post("/:id/messages", s.handleSendGroupMessage)
	groups.Put("/:id/mark-read", s.handleMarkGroupRead)
	groups.Post("/:id/members", s.handleAddMember)
	groups.Delete("/:id/members/:userId", s.handleRemoveMember)
	groups.Put("/:id", s.handleUpdateGroup)
	groups.Delete("/:id/photo", s.handleDeleteGroupPhoto)
	groups.Delete("/:id", s.handleDeleteGroup)

	s.app.Use("/ws", s.wsUpgrade)
	s.app.Get("/ws", websocket.New(s.handleWS))
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
