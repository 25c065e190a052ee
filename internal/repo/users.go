package repo

import (
	"context"

	"github.com/agrolink/farmmarket/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// GetUserByEmail expects an already-normalized (lowercased) email;
// stored emails are normalized on write.
func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
