package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add добавляет рецепт в избранное. Дубль (в том числе при гонке
// двух одновременных запросов) даёт ErrDuplicate.
func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	fav := domain.Favorite{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}
