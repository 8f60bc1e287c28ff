package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type Service struct {
	users   UserRepositoryInterface
	subs    SubscriptionRepositoryInterface
	recipes RecipeReader
}

func NewService(users UserRepositoryInterface, subs SubscriptionRepositoryInterface, recipes RecipeReader) *Service {
	return &Service{users: users, subs: subs, recipes: recipes}
}

// GetUser возвращает проекцию пользователя. requesterID == 0 — аноним.
func (s *Service) GetUser(ctx context.Context, requesterID, id int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isSubscribed, err := s.isSubscribed(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}

	resp := NewUserResponse(user, isSubscribed)
	return &resp, nil
}

func (s *Service) ListUsers(ctx context.Context, requesterID int64, limit, offset int) ([]UserResponse, int64, error) {
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		isSubscribed, err := s.isSubscribed(ctx, requesterID, users[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, NewUserResponse(&users[i], isSubscribed))
	}
	return out, total, nil
}

// Subscribe подписывает user на author. Подписка на себя проверяется
// до проверки уникальности.
func (s *Service) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*SubscriptionResponse, error) {
	if userID == authorID {
		return nil, ErrSelfSubscribe
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.subs.Add(ctx, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	return s.subscriptionResponse(ctx, author, recipesLimit)
}

func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	removed, err := s.subs.Remove(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotSubscribed
	}
	return nil
}

// Subscriptions — авторы, на которых подписан пользователь,
// каждый с recipes_count и свежими рецептами (обрезка recipes_limit)
func (s *Service) Subscriptions(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]SubscriptionResponse, int64, error) {
	authors, total, err := s.subs.ListAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]SubscriptionResponse, 0, len(authors))
	for i := range authors {
		resp, err := s.subscriptionResponse(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *resp)
	}
	return out, total, nil
}

func (s *Service) subscriptionResponse(ctx context.Context, author *domain.User, recipesLimit int) (*SubscriptionResponse, error) {
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	shorts := make([]RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		shorts = append(shorts, RecipeShort{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		})
	}

	return &SubscriptionResponse{
		UserResponse: NewUserResponse(author, true),
		Recipes:      shorts,
		RecipesCount: count,
	}, nil
}

func (s *Service) isSubscribed(ctx context.Context, requesterID, authorID int64) (bool, error) {
	if requesterID == 0 || requesterID == authorID {
		return false, nil
	}
	return s.subs.Exists(ctx, requesterID, authorID)
}
