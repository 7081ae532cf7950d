// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/users/:id/friend. The :id names the
// target; the acting user arrives as current_user_id in the body.
// @Summary Send friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body object{current_user_id=int} true "Acting user"
// @Success 200 {object} models.Friendship
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friend [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, err := s.actorID(c)
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.SendFriendRequest(c.Context(), currentUserID, targetID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(friendship)
}

// AcceptFriendRequest handles POST /api/users/:id/friend/accept. The :id is
// the requester whose pending request the acting user accepts.
// @Summary Accept friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body object{current_user_id=int} true "Acting user"
// @Success 200 {object} models.Friendship
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friend/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requesterID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, err := s.actorID(c)
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.AcceptFriendRequest(c.Context(), currentUserID, requesterID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(friendship)
}

// RejectFriendRequest handles POST /api/users/:id/friend/reject. Rejecting
// removes the pending request; a repeat call finds nothing and returns 404.
// @Summary Reject friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body object{current_user_id=int} true "Acting user"
// @Success 200 {object} models.Friendship
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friend/reject [post]
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requesterID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, err := s.actorID(c)
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.RejectFriendRequest(c.Context(), currentUserID, requesterID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(friendship)
}
