// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCampaigns handles GET /api/campaigns. An optional status query filters
// by lifecycle state (pending/approved/rejected/completed).
func (s *Server) GetCampaigns(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	status := models.CampaignStatus(c.Query("status"))

	campaigns, err := s.campaignService.ListCampaigns(c.Context(), status, p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(campaigns)
}

// GetCampaign handles GET /api/campaigns/:id
func (s *Server) GetCampaign(c *fiber.Ctx) error {
	campaignID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	campaign, err := s.campaignService.GetCampaign(c.Context(), campaignID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(campaign)
}

// CreateCampaign handles POST /api/campaigns. New campaigns start pending
// and are hidden from the approved listing until a faculty review.
// @Summary Create campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Success 201 {object} models.Campaign
// @Failure 400 {object} models.ErrorResponse
// @Router /campaigns [post]
func (s *Server) CreateCampaign(c *fiber.Ctx) error {
	var req struct {
		UserID         uint    `json:"user_id"`
		OrganizationID *uint   `json:"organization_id"`
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		TargetAmount   float64 `json:"target_amount"`
		MinDonation    float64 `json:"min_donation"`
		MaxDonation    float64 `json:"max_donation"`
		DonationType   string  `json:"donation_type"`
		DesignatedSite string  `json:"designated_site"`
		Image          string  `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	campaign, err := s.campaignService.CreateCampaign(c.Context(), service.CreateCampaignInput{
		UserID:         req.UserID,
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		TargetAmount:   req.TargetAmount,
		MinDonation:    req.MinDonation,
		MaxDonation:    req.MaxDonation,
		DonationType:   models.DonationType(req.DonationType),
		DesignatedSite: req.DesignatedSite,
		Image:          req.Image,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// ApproveCampaign handles POST /api/campaigns/:id/approve. Only users whose
// live role is faculty may approve; the check hits the user store on every
// call rather than trusting a role cached in a session token.
// @Summary Approve campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body object{user_id=int} true "Reviewing faculty user"
// @Success 200 {object} models.Campaign
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /campaigns/{id}/approve [post]
func (s *Server) ApproveCampaign(c *fiber.Ctx) error {
	campaignID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	reviewerID, err := s.actorID(c)
	if err != nil {
		return nil
	}

	campaign, err := s.campaignService.ApproveCampaign(c.Context(), campaignID, reviewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(campaign)
}

// RejectCampaign handles POST /api/campaigns/:id/reject. Same faculty gate
// as approval; feedback is stored for the owner but no notification is sent.
func (s *Server) RejectCampaign(c *fiber.Ctx) error {
	campaignID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID   uint   `json:"user_id"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id is required"))
	}

	campaign, err := s.campaignService.RejectCampaign(c.Context(), campaignID, req.UserID, req.Feedback)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(campaign)
}

// GetApprovalHistory handles GET /api/approvals/:campaignId
func (s *Server) GetApprovalHistory(c *fiber.Ctx) error {
	campaignID, err := s.parseID(c, "campaignId")
	if err != nil {
		return nil
	}

	history, err := s.campaignService.ApprovalHistory(c.Context(), campaignID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(history)
}

// GetCampaignDonations handles GET /api/campaigns/:id/donations
func (s *Server) GetCampaignDonations(c *fiber.Ctx) error {
	campaignID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	donations, err := s.donationService.ListDonationsByCampaign(c.Context(), campaignID)
	if err != nil {
		return models.RespondError(c, err)
	}

	raised, target, err := s.donationService.CampaignProgress(c.Context(), campaignID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"donations":     donations,
		"total_raised":  raised,
		"target_amount": target,
	})
}
