package service

import (
	"context"
	"testing"

	"trailfund/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentRepoStub struct {
	createWithCounterFn func(context.Context, *models.Comment) error
	getByIDFn           func(context.Context, uint) (*models.Comment, error)
	listByPostFn        func(context.Context, uint) ([]*models.Comment, error)
	deleteFn            func(context.Context, uint) error
}

func (s *commentRepoStub) CreateWithCounter(ctx context.Context, comment *models.Comment) error {
	return s.createWithCounterFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createWithCounterFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

func uintPtr(v uint) *uint { return &v }

func TestCommentServiceAddCommentRequiresContent(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	_, err := svc.AddComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2})
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeValidation, models.ErrorCodeOf(err))
}

func TestCommentServiceAddCommentRequiresUser(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	_, err := svc.AddComment(context.Background(), CreateCommentInput{PostID: 2, Content: "hello"})
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeValidation, models.ErrorCodeOf(err))
	assert.Contains(t, err.Error(), "User ID and content are required")
}

func TestCommentServiceAddCommentCrossPostParent(t *testing.T) {
	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, PostID: 99}, nil
	}

	svc := NewCommentService(repo, noopPostRepo())
	_, err := svc.AddComment(context.Background(), CreateCommentInput{
		UserID:          1,
		PostID:          2,
		Content:         "reply",
		ParentCommentID: uintPtr(7),
	})
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeValidation, models.ErrorCodeOf(err))
	assert.Contains(t, err.Error(), "different post")
}

func TestCommentServiceAddCommentMissingParent(t *testing.T) {
	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return nil, models.NewNotFoundError("Comment", id)
	}

	svc := NewCommentService(repo, noopPostRepo())
	_, err := svc.AddComment(context.Background(), CreateCommentInput{
		UserID:          1,
		PostID:          2,
		Content:         "reply",
		ParentCommentID: uintPtr(7),
	})
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeValidation, models.ErrorCodeOf(err))
}

func TestCommentServiceAddCommentSamePostParent(t *testing.T) {
	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, PostID: 2}, nil
	}
	var created *models.Comment
	repo.createWithCounterFn = func(_ context.Context, c *models.Comment) error {
		created = c
		c.ID = 42
		return nil
	}

	svc := NewCommentService(repo, noopPostRepo())
	_, err := svc.AddComment(context.Background(), CreateCommentInput{
		UserID:          1,
		PostID:          2,
		Content:         "reply",
		ParentCommentID: uintPtr(7),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.ParentCommentID)
	assert.EqualValues(t, 7, *created.ParentCommentID)
}

func TestBuildCommentTree(t *testing.T) {
	flat := []*models.Comment{
		{ID: 1, PostID: 9, Content: "root a"},
		{ID: 2, PostID: 9, Content: "root b"},
		{ID: 3, PostID: 9, Content: "reply to a", ParentCommentID: uintPtr(1)},
		{ID: 4, PostID: 9, Content: "reply to reply", ParentCommentID: uintPtr(3)},
		{ID: 5, PostID: 9, Content: "second reply to a", ParentCommentID: uintPtr(1)},
	}

	roots := buildCommentTree(flat)
	require.Len(t, roots, 2)
	assert.EqualValues(t, 1, roots[0].ID)
	assert.EqualValues(t, 2, roots[1].ID)

	require.Len(t, roots[0].Replies, 2)
	assert.EqualValues(t, 3, roots[0].Replies[0].ID)
	assert.EqualValues(t, 5, roots[0].Replies[1].ID)

	// Nesting is structurally unbounded even if clients render two levels.
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.EqualValues(t, 4, roots[0].Replies[0].Replies[0].ID)

	assert.Empty(t, roots[1].Replies)
}

func TestBuildCommentTreeOrphanPromoted(t *testing.T) {
	flat := []*models.Comment{
		{ID: 1, PostID: 9, Content: "root"},
		{ID: 2, PostID: 9, Content: "orphan reply", ParentCommentID: uintPtr(77)},
	}

	roots := buildCommentTree(flat)
	require.Len(t, roots, 2)
	assert.EqualValues(t, 2, roots[1].ID)
}
