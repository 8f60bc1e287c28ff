package users

import (
	"context"

	"foodgram/internal/domain"
)

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
}

type SubscriptionRepositoryInterface interface {
	Add(ctx context.Context, userID, authorID int64) error
	Remove(ctx context.Context, userID, authorID int64) (bool, error)
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]domain.User, int64, error)
}

// RecipeReader — ровно то, что нужно для recipes/recipes_count в подписках
type RecipeReader interface {
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
}
