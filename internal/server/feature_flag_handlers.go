// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/feature-flags. The snapshot is evaluated
// for the authenticated user when a token is present, so percentage rollouts
// resolve to this user's bucket; anonymous callers get the user-0 view.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	var userID uint
	if uid, ok := c.Locals("userID").(uint); ok {
		userID = uid
	}

	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(userID),
	})
}
