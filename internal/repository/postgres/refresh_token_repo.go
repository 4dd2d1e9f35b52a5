package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *refreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var record domain.RefreshToken
	err := r.db.WithContext(ctx).First(&record, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteByToken removes the token row and returns it, or gorm.ErrRecordNotFound
// if no such token was stored.
func (r *refreshTokenRepository) DeleteByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var record domain.RefreshToken
	err := r.db.WithContext(ctx).First(&record, "token = ?", token).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Delete(&domain.RefreshToken{}, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *refreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.RefreshToken{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}
