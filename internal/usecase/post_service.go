package usecase

import (
	"context"
	"errors"
	"time"

	"atelier-backend/internal/domain"

	"github.com/rs/zerolog"
)

type PostRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Save(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id int64) error
}

type PostService struct {
	Posts       PostRepo
	Commissions CommissionRepo
	Stores      StoreRepo
	Log         zerolog.Logger
}

// ownsCommission checks the caller created the store the commission hangs off.
func (s *PostService) ownsCommission(ctx context.Context, creator *domain.User, commissionID int64, generic string) error {
	commission, err := s.Commissions.GetByID(ctx, commissionID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Commission not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("post: commission lookup failed")
		return ErrInternal(generic)
	}
	st, err := s.Stores.GetByID(ctx, commission.StoreID)
	if err != nil {
		s.Log.Error().Err(err).Msg("post: store lookup failed")
		return ErrInternal(generic)
	}
	if st.CreatorID != creator.ID {
		return ErrForbidden("You are not authorized")
	}
	return nil
}

type CreatePostInput struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Images       []string `json:"images,omitempty"`
	CommissionID int64    `json:"commissionId"`
}

func (s *PostService) CreatePost(ctx context.Context, creator *domain.User, in CreatePostInput) error {
	if err := s.ownsCommission(ctx, creator, in.CommissionID, "Could not create post"); err != nil {
		return err
	}
	now := time.Now().UTC()
	p := &domain.Post{
		Title:        in.Title,
		Content:      in.Content,
		Images:       in.Images,
		CommissionID: in.CommissionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Posts.Save(ctx, p); err != nil {
		s.Log.Error().Err(err).Msg("create post: save failed")
		return ErrInternal("Could not create post")
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if errors.Is(err, ErrNoRows) {
		return nil, ErrNotFound("Post not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("get post: lookup failed")
		return nil, ErrInternal("Could not get post")
	}
	return p, nil
}

type EditPostInput struct {
	PostID  int64    `json:"postId"`
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content,omitempty"`
	Images  []string `json:"images,omitempty"`
}

func (s *PostService) EditPost(ctx context.Context, creator *domain.User, in EditPostInput) error {
	p, err := s.Posts.GetByID(ctx, in.PostID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Post not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("edit post: lookup failed")
		return ErrInternal("Could not edit post")
	}
	if err := s.ownsCommission(ctx, creator, p.CommissionID, "Could not edit post"); err != nil {
		return err
	}
	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Content != "" {
		p.Content = in.Content
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.Posts.Save(ctx, p); err != nil {
		s.Log.Error().Err(err).Msg("edit post: save failed")
		return ErrInternal("Could not edit post")
	}
	return nil
}

func (s *PostService) DeletePost(ctx context.Context, creator *domain.User, postID int64) error {
	p, err := s.Posts.GetByID(ctx, postID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Post not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("delete post: lookup failed")
		return ErrInternal("Could not delete post")
	}
	if err := s.ownsCommission(ctx, creator, p.CommissionID, "Could not delete post"); err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, p.ID); err != nil {
		s.Log.Error().Err(err).Msg("delete post: delete failed")
		return ErrInternal("Could not delete post")
	}
	return nil
}
