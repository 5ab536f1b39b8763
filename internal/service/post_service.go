package service

import (
	"context"

	"tastebook/internal/models"
	"tastebook/internal/repository"
)

// PostService implements blog post management. Mutations are always scoped
// to the calling user; a post owned by someone else behaves like a missing one.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
	ImageURL    string
	VideoURL    string
}

// UpdatePostInput carries the fields accepted when updating an owned post.
type UpdatePostInput struct {
	ID          uint
	UserID      uint
	Title       string
	Description string
	ImageURL    string
	VideoURL    string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost persists a new post owned by the caller. The author is taken
// from the authenticated identity, never from the request body.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		VideoURL:    in.VideoURL,
		UserID:      in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a single post with its author and comments.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns a page of posts, newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// UpdatePost applies the non-empty fields to a post the caller owns.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	fields := map[string]interface{}{}
	if in.Title != "" {
		fields["title"] = in.Title
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}
	if in.VideoURL != "" {
		fields["video_url"] = in.VideoURL
	}
	if len(fields) == 0 {
		return models.NewValidationError("No fields to update")
	}
	return s.postRepo.UpdateOwned(ctx, in.ID, in.UserID, fields)
}

// DeletePost removes a post the caller owns, along with its comments.
func (s *PostService) DeletePost(ctx context.Context, id, userID uint) error {
	return s.postRepo.DeleteOwned(ctx, id, userID)
}
