// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAnnouncements handles GET /api/announcements
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.announcementService.ListAnnouncements(c.Context())
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(announcements)
}

// CreateAnnouncement handles POST /api/announcements. Only faculty and
// admin users may post announcements.
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		UserID   uint   `json:"user_id"`
		Title    string `json:"title"`
		Content  string `json:"content"`
		IsPinned bool   `json:"is_pinned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id is required"))
	}

	announcement, err := s.announcementService.PostAnnouncement(
		c.Context(), req.UserID, req.Title, req.Content, req.IsPinned)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}

// DeleteAnnouncement handles DELETE /api/announcements/:id (admin only).
func (s *Server) DeleteAnnouncement(c *fiber.Ctx) error {
	announcementID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	adminID, err := s.actorID(c)
	if err != nil {
		return nil
	}

	if err := s.announcementService.DeleteAnnouncement(c.Context(), adminID, announcementID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Announcement deleted"})
}
