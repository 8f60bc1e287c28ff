package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Add создаёт подписку user -> author.
// Гонку двух одновременных подписок решает уникальный индекс:
// проигравший получает ErrDuplicate.
func (r *SubscriptionRepository) Add(ctx context.Context, userID, authorID int64) error {
	sub := domain.Subscription{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(&sub).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *SubscriptionRepository) Remove(ctx context.Context, userID, authorID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SubscriptionRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// ListAuthors возвращает авторов, на которых подписан пользователь
func (r *SubscriptionRepository) ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]domain.User, int64, error) {
	var authors []domain.User
	var total int64

	base := r.db.WithContext(ctx).Model(&domain.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("users.username").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error

	return authors, total, err
}
