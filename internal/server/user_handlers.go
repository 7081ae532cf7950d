// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetFullProfile handles GET /api/users/:id/full
// @Summary Full user profile
// @Description User with friends, pending friend requests and recent posts populated
// @Tags users
// @Produce json
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/full [get]
func (s *Server) GetFullProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetFullProfile(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateUser handles PUT /api/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Username       string `json:"username"`
		Name           string `json:"name"`
		Age            int    `json:"age"`
		College        string `json:"college"`
		Department     string `json:"department"`
		YearLevel      string `json:"year_level"`
		Bio            string `json:"bio"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         userID,
		Username:       req.Username,
		Name:           req.Name,
		Age:            req.Age,
		College:        req.College,
		Department:     req.Department,
		YearLevel:      req.YearLevel,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// UpdatePhoto handles POST /api/users/:id/photo. The photo travels as a
// base64 string and is stored opaquely; the server never decodes it.
func (s *Server) UpdatePhoto(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ProfilePicture string `json:"profile_picture"`
		Photo          string `json:"photo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	photo := req.ProfilePicture
	if photo == "" {
		photo = req.Photo
	}

	user, err := s.userService.UpdatePhoto(c.Context(), userID, photo)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPostsByUser(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(posts)
}

// GetUserRequests handles GET /api/users/:id/requests
func (s *Server) GetUserRequests(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	requests, err := s.requestService.ListRequestsByUser(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(requests)
}

// GetUserCampaigns handles GET /api/users/:id/campaigns
func (s *Server) GetUserCampaigns(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	campaigns, err := s.campaignService.ListCampaignsByUser(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(campaigns)
}

// GetUserDonations handles GET /api/users/:id/donations
func (s *Server) GetUserDonations(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	donations, err := s.donationService.ListDonationsByUser(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(donations)
}
