package catalog

import (
	"context"

	"foodgram/internal/domain"
)

type TagRepositoryInterface interface {
	GetAll(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
}

type IngredientRepositoryInterface interface {
	List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
}

// Service отдаёт справочные данные: теги и ингредиенты
type Service struct {
	tags        TagRepositoryInterface
	ingredients IngredientRepositoryInterface
}

func NewService(tags TagRepositoryInterface, ingredients IngredientRepositoryInterface) *Service {
	return &Service{tags: tags, ingredients: ingredients}
}

func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.GetAll(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

func (s *Service) ListIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	return s.ingredients.List(ctx, namePrefix)
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	return s.ingredients.GetByID(ctx, id)
}
