// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reports. Exactly one of post_id /
// request_id / campaign_id identifies the reported content.
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		UserID      uint   `json:"user_id"`
		PostID      *uint  `json:"post_id"`
		RequestID   *uint  `json:"request_id"`
		CampaignID  *uint  `json:"campaign_id"`
		Reason      string `json:"reason"`
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

	report, err := s.moderationService.CreateReport(c.Context(), service.CreateReportInput{
		UserID:      req.UserID,
		PostID:      req.PostID,
		RequestID:   req.RequestID,
		CampaignID:  req.CampaignID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/reports?user_id=N (admin only).
func (s *Server) GetReports(c *fiber.Ctx) error {
	adminID := c.QueryInt("user_id")
	if adminID <= 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id query parameter is required"))
	}
	p := parsePagination(c, 50)

	reports, err := s.moderationService.ListReports(c.Context(), uint(adminID), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(reports)
}

// ResolveReport handles PUT /api/reports/:id (admin only).
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"user_id"`
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id is required"))
	}

	if err := s.moderationService.ResolveReport(c.Context(), req.UserID, reportID, req.Action); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report resolved"})
}
