// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications/:userId, newest first.
// @Summary List notifications for a user
// @Tags notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications/{userId} [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	items, err := s.notificationService.ListNotifications(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(items)
}

// MarkNotificationRead handles PUT /api/notifications/:id/read. The route
// carries no body; any caller can mark any notification read. Matches the
// observed contract, which trusts the client with its own notification IDs.
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Success 200 {object} models.Notification
// @Failure 404 {object} models.ErrorResponse
// @Router /notifications/{id}/read [put]
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	notification, err := s.notificationService.MarkRead(c.Context(), notificationID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(notification)
}

// GetUnreadCount handles GET /api/notifications/:userId/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	count, err := s.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkAllNotificationsRead handles POST /api/notifications/:userId/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkAllRead(c.Context(), userID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked read"})
}
