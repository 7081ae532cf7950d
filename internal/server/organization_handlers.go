// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetOrganizations handles GET /api/organizations with an optional status
// filter (pending/approved/rejected).
func (s *Server) GetOrganizations(c *fiber.Ctx) error {
	status := models.OrganizationStatus(c.Query("status"))

	orgs, err := s.organizationService.ListOrganizations(c.Context(), status)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(orgs)
}

// GetOrganization handles GET /api/organizations/:id
func (s *Server) GetOrganization(c *fiber.Ctx) error {
	orgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	org, err := s.organizationService.GetOrganization(c.Context(), orgID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(org)
}

// RegisterOrganization handles POST /api/organizations. Registrations start
// pending until a faculty or admin review.
func (s *Server) RegisterOrganization(c *fiber.Ctx) error {
	var req struct {
		UserID      uint   `json:"user_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id is required"))
	}

	org, err := s.organizationService.RegisterOrganization(c.Context(), req.UserID, req.Name, req.Description)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(org)
}

// ReviewOrganization handles POST /api/organizations/:id/review
func (s *Server) ReviewOrganization(c *fiber.Ctx) error {
	orgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"user_id"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id is required"))
	}

	if err := s.organizationService.ReviewOrganization(c.Context(), req.UserID, orgID,
		models.OrganizationStatus(req.Status)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Organization reviewed"})
}
