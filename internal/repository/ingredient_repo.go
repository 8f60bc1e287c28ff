package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// List фильтрует по префиксу имени (регистронезависимо)
func (r *IngredientRepository) List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	q := r.db.WithContext(ctx).Order("name")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE ?", toLowerPrefix(namePrefix))
	}

	var ingredients []domain.Ingredient
	err := q.Find(&ingredients).Error
	return ingredients, err
}

func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *IngredientRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}
