// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDonations handles GET /api/donations?user_id=N
func (s *Server) GetDonations(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id query parameter is required"))
	}

	donations, err := s.donationService.ListDonationsByUser(c.Context(), uint(userID))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(donations)
}

// CreateDonation handles POST /api/donations. Exactly one of request_id /
// campaign_id must be set; campaign donations must land on an approved
// campaign and inside its min/max bounds.
// @Summary Record a donation
// @Tags donations
// @Accept json
// @Produce json
// @Success 201 {object} models.Donation
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /donations [post]
func (s *Server) CreateDonation(c *fiber.Ctx) error {
	var req struct {
		UserID          uint    `json:"user_id"`
		RequestID       *uint   `json:"request_id"`
		CampaignID      *uint   `json:"campaign_id"`
		DonationType    string  `json:"donation_type"`
		DonationAmount  float64 `json:"donation_amount"`
		ItemDescription string  `json:"item_description"`
		DigitalMethod   string  `json:"digital_method"`
		ServiceDetails  string  `json:"service_details"`
		ResourceDetails string  `json:"resource_details"`
		MeetupLocation  string  `json:"meetup_location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id is required"))
	}

	donation, err := s.donationService.CreateDonation(c.Context(), service.CreateDonationInput{
		UserID:          req.UserID,
		RequestID:       req.RequestID,
		CampaignID:      req.CampaignID,
		DonationType:    req.DonationType,
		DonationAmount:  req.DonationAmount,
		ItemDescription: req.ItemDescription,
		DigitalMethod:   req.DigitalMethod,
		ServiceDetails:  req.ServiceDetails,
		ResourceDetails: req.ResourceDetails,
		MeetupLocation:  req.MeetupLocation,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(donation)
}
