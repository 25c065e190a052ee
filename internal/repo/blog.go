package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrolink/farmmarket/internal/models"
)

func (r *GormRepo) CreateBlogPost(ctx context.Context, post *models.BlogPost) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *GormRepo) GetBlogPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormRepo) ListBlogPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	posts := make([]models.BlogPost, 0, limit)
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormRepo) GetVote(ctx context.Context, postID uint, voterID string) (*models.BlogVote, error) {
	var vote models.BlogVote
	if err := r.DB.WithContext(ctx).
		Where("post_id = ? AND voter_id = ?", postID, voterID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *GormRepo) SaveVote(ctx context.Context, vote *models.BlogVote) error {
	return r.DB.WithContext(ctx).Save(vote).Error
}

func (r *GormRepo) DeleteVote(ctx context.Context, vote *models.BlogVote) error {
	return r.DB.WithContext(ctx).Delete(vote).Error
}

// AdjustVoteCounts applies counter deltas in a single UPDATE so two
// concurrent votes never lose an increment.
func (r *GormRepo) AdjustVoteCounts(ctx context.Context, postID uint, likesDelta, dislikesDelta int) error {
	updates := map[string]any{}
	if likesDelta != 0 {
		updates["likes"] = gorm.Expr("likes + ?", likesDelta)
	}
	if dislikesDelta != 0 {
		updates["dislikes"] = gorm.Expr("dislikes + ?", dislikesDelta)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", postID).
		Updates(updates).Error
}
