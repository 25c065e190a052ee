package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/repo"
	"github.com/agrolink/farmmarket/internal/transport"
)

const DefaultBlogLimit = 20

type BlogService struct {
	Repo *repo.GormRepo
}

func (s *BlogService) CreatePost(ctx context.Context, req transport.CreateBlogPostRequest) (*models.BlogPost, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Author == "" {
		return nil, fmt.Errorf("%w: author is required", ErrValidation)
	}
	if req.FullDesc == "" {
		return nil, fmt.Errorf("%w: fullDesc is required", ErrValidation)
	}

	post := &models.BlogPost{
		Title:     req.Title,
		Author:    req.Author,
		Body:      req.FullDesc,
		Thumbnail: req.Thumbnail,
	}
	if err := s.Repo.CreateBlogPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) ListPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	if limit <= 0 {
		limit = DefaultBlogLimit
	}
	return s.Repo.ListBlogPosts(ctx, limit)
}

// Vote walks the per-voter state machine {none, liked, disliked}. The
// ledger row and the post counters move together inside one
// transaction, so repeated and concurrent votes from different voters
// stay consistent.
//
//	none     -> liked     on like      (likes+1)
//	none     -> disliked  on dislike   (dislikes+1)
//	liked    -> none      on like      (likes-1)
//	liked    -> disliked  on dislike   (likes-1, dislikes+1)
//	disliked -> none      on dislike   (dislikes-1)
//	disliked -> liked     on like      (likes+1, dislikes-1)
func (s *BlogService) Vote(ctx context.Context, postID uint, voterID, direction string) (*transport.BlogPostView, error) {
	if voterID == "" {
		return nil, fmt.Errorf("%w: voter identity is required", ErrValidation)
	}
	if direction != models.VoteLike && direction != models.VoteDislike {
		return nil, fmt.Errorf("%w: direction must be like or dislike", ErrValidation)
	}

	var view *transport.BlogPostView
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetBlogPost(ctx, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: blog post %d", ErrNotFound, postID)
			}
			return err
		}

		var likesDelta, dislikesDelta int
		userVote := direction

		vote, err := tx.GetVote(ctx, postID, voterID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.SaveVote(ctx, &models.BlogVote{
				PostID:    postID,
				VoterID:   voterID,
				Direction: direction,
			}); err != nil {
				return err
			}
			if direction == models.VoteLike {
				likesDelta = 1
			} else {
				dislikesDelta = 1
			}
		case err != nil:
			return err
		case vote.Direction == direction:
			// Same direction again toggles the vote off.
			if err := tx.DeleteVote(ctx, vote); err != nil {
				return err
			}
			if direction == models.VoteLike {
				likesDelta = -1
			} else {
				dislikesDelta = -1
			}
			userVote = ""
		default:
			vote.Direction = direction
			if err := tx.SaveVote(ctx, vote); err != nil {
				return err
			}
			if direction == models.VoteLike {
				likesDelta, dislikesDelta = 1, -1
			} else {
				likesDelta, dislikesDelta = -1, 1
			}
		}

		if err := tx.AdjustVoteCounts(ctx, postID, likesDelta, dislikesDelta); err != nil {
			return err
		}

		post, err := tx.GetBlogPost(ctx, postID)
		if err != nil {
			return err
		}
		view = &transport.BlogPostView{BlogPost: *post, UserVote: userVote}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
