package recipes

import (
	"context"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type RecipeRepositoryInterface interface {
	Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, rows []domain.IngredientInRecipe) error
	Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, rows []domain.IngredientInRecipe) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.RecipeFilters) ([]domain.Recipe, int64, error)
	ShoppingListItems(ctx context.Context, userID int64) ([]repository.ShoppingListItem, error)
}

type TagReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
}

type IngredientReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
}

type FavoriteRepositoryInterface interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
}

type CartRepositoryInterface interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type SubscriptionChecker interface {
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ImageStore сохраняет base64-изображение и возвращает URL
type ImageStore interface {
	SaveBase64(dataURL, subdir string) (string, error)
}
