// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRequests handles GET /api/requests with an optional status filter.
func (s *Server) GetRequests(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	status := models.RequestStatus(c.Query("status"))

	requests, err := s.requestService.ListRequests(c.Context(), status, p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(requests)
}

// GetRequest handles GET /api/requests/:id
func (s *Server) GetRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.requestService.GetRequest(c.Context(), requestID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(request)
}

// CreateRequest handles POST /api/requests. Each request type carries its
// own required detail field (item_type, digital_type, service_type,
// resource_type); the service enforces them.
// @Summary Create aid request
// @Tags requests
// @Accept json
// @Produce json
// @Success 201 {object} models.Request
// @Failure 400 {object} models.ErrorResponse
// @Router /requests [post]
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	var req struct {
		UserID        uint    `json:"user_id"`
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		RequestType   string  `json:"request_type"`
		ItemType      string  `json:"item_type"`
		Location      string  `json:"location"`
		MeetupTime    string  `json:"meetup_time"`
		MinDonation   float64 `json:"min_donation"`
		MaxDonation   float64 `json:"max_donation"`
		DigitalType   string  `json:"digital_type"`
		AccountNumber string  `json:"account_number"`
		ServiceType   string  `json:"service_type"`
		ResourceType  string  `json:"resource_type"`
		Urgency       string  `json:"urgency"`
		Hashtags      string  `json:"hashtags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.requestService.CreateRequest(c.Context(), service.CreateRequestInput{
		UserID:        req.UserID,
		Title:         req.Title,
		Description:   req.Description,
		RequestType:   models.RequestType(req.RequestType),
		ItemType:      req.ItemType,
		Location:      req.Location,
		MeetupTime:    req.MeetupTime,
		MinDonation:   req.MinDonation,
		MaxDonation:   req.MaxDonation,
		DigitalType:   req.DigitalType,
		AccountNumber: req.AccountNumber,
		ServiceType:   req.ServiceType,
		ResourceType:  req.ResourceType,
		Urgency:       models.Urgency(req.Urgency),
		Hashtags:      req.Hashtags,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// FulfillRequest handles POST /api/requests/:id/fulfill. A user may register
// at most once per request; the second attempt gets a 400 conflict. The
// request owner is notified when someone else registers.
// @Summary Register to fulfill a request
// @Tags requests
// @Accept json
// @Produce json
// @Param request body object{user_id=int} true "Acting user"
// @Success 200 {object} models.Request
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{id}/fulfill [post]
func (s *Server) FulfillRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.actorID(c)
	if err != nil {
		return nil
	}

	request, err := s.requestService.RegisterFulfillment(c.Context(), requestID, userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(request)
}

// FlagRequest handles POST /api/requests/:id/flag
func (s *Server) FlagRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"user_id"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondError(c,
			models.NewValidationError("user_id is required"))
	}

	if err := s.requestService.FlagRequest(c.Context(), requestID, req.UserID, req.Reason); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request flagged for review"})
}
