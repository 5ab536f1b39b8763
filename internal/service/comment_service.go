package service

import (
	"context"

	"tastebook/internal/models"
	"tastebook/internal/repository"
)

// CommentService implements comments attached to posts.
type CommentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// CreateComment attaches a comment to the given post. The author is taken
// from the authenticated identity.
func (s *CommentService) CreateComment(ctx context.Context, postID, userID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	comment := &models.Comment{
		Comment: text,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the comments on a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// DeleteComment removes a comment the caller owns.
func (s *CommentService) DeleteComment(ctx context.Context, id, userID uint) error {
	return s.commentRepo.DeleteOwned(ctx, id, userID)
}
