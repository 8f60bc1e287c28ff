package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type ShoppingCartRepository struct {
	db *gorm.DB
}

func NewShoppingCartRepository(db *gorm.DB) *ShoppingCartRepository {
	return &ShoppingCartRepository{db: db}
}

func (r *ShoppingCartRepository) Add(ctx context.Context, userID, recipeID int64) error {
	item := domain.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ShoppingCartRepository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.ShoppingCart{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ShoppingCartRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// CountByUser нужен для проверки пустой корзины перед выгрузкой списка
func (r *ShoppingCartRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ShoppingCart{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
