package service

import (
	"context"

	"trailfund/internal/models"
	"trailfund/internal/repository"
)

// CommentService provides comment creation and thread assembly.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput is the payload for adding a comment to a post.
type CreateCommentInput struct {
	UserID          uint
	PostID          uint
	Content         string
	ParentCommentID *uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment creates a comment on a post. A reply's parent must be an
// existing comment on the same post; the post's comment counter advances by
// exactly one regardless of nesting depth.
func (s *CommentService) AddComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxCommentLen = 10000

	if in.UserID == 0 || in.Content == "" {
		return nil, models.NewValidationError("User ID and content are required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if in.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			return nil, models.NewValidationError("Parent comment not found")
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		UserID:          in.UserID,
		PostID:          in.PostID,
		Content:         in.Content,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.commentRepo.CreateWithCounter(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the post's reply tree: root comments in creation
// order, each carrying its direct replies. The tree nests to arbitrary
// depth even though clients typically render two levels.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.CommentThread, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return buildCommentTree(comments), nil
}

// buildCommentTree groups a flat, creation-ordered comment list into a
// reply tree. A reply whose parent is missing (deleted out from under it)
// is promoted to a root rather than dropped.
func buildCommentTree(comments []*models.Comment) []*models.CommentThread {
	nodes := make(map[uint]*models.CommentThread, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentThread{Comment: *c, Replies: []*models.CommentThread{}}
	}

	roots := make([]*models.CommentThread, 0, len(comments))
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentCommentID != nil {
			if parent, ok := nodes[*c.ParentCommentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}
