// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments. Comments come back as a
// tree: root comments in creation order, each carrying its ordered replies.
// @Summary List comments on a post
// @Tags posts
// @Produce json
// @Success 200 {array} models.CommentThread
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	threads, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(threads)
}

// CreateComment handles POST /api/posts/:id/comments. A reply's
// parent_comment_id must name an existing comment on the same post.
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{user_id=int,content=string,parent_comment_id=int} true "Comment payload"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID          uint   `json:"user_id"`
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.Context(), service.CreateCommentInput{
		UserID:          req.UserID,
		PostID:          postID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
