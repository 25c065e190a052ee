package service

import (
	"context"
	"fmt"

	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/repo"
	"github.com/agrolink/farmmarket/internal/transport"
)

const DefaultCommentLimit = 5

type CommentService struct {
	Repo *repo.GormRepo
}

// AddComment appends a timestamped entry to the product's thread. The
// thread itself is implicit: it exists as soon as its first comment
// does.
func (s *CommentService) AddComment(ctx context.Context, req transport.AddCommentRequest) (*transport.CommentThread, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: productId is required", ErrValidation)
	}
	if req.User == "" {
		return nil, fmt.Errorf("%w: user is required", ErrValidation)
	}
	if req.Comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrValidation)
	}

	comment := &models.Comment{
		ProductID: req.ProductID,
		Author:    req.User,
		Text:      req.Comment,
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.GetComments(ctx, req.ProductID, DefaultCommentLimit)
}

func (s *CommentService) GetComments(ctx context.Context, productID uint, limit int) (*transport.CommentThread, error) {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	comments, err := s.Repo.ListComments(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	return &transport.CommentThread{
		ProductID: productID,
		Comments:  comments,
	}, nil
}
