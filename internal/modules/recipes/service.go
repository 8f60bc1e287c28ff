package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"foodgram/internal/domain"
	"foodgram/internal/modules/users"
	"foodgram/internal/pkg/images"
	"foodgram/internal/repository"
)

// Service орхеструет конвейер записи/чтения рецепта:
// валидация -> разрешение справочников -> транзакционная запись -> проекция.
type Service struct {
	recipes     RecipeRepositoryInterface
	tags        TagReader
	ingredients IngredientReader
	favorites   FavoriteRepositoryInterface
	cart        CartRepositoryInterface
	subs        SubscriptionChecker
	userReader  UserReader
	imageStore  ImageStore
}

func NewService(
	recipes RecipeRepositoryInterface,
	tags TagReader,
	ingredients IngredientReader,
	favorites FavoriteRepositoryInterface,
	cart CartRepositoryInterface,
	subs SubscriptionChecker,
	userReader UserReader,
	imageStore ImageStore,
) *Service {
	return &Service{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		favorites:   favorites,
		cart:        cart,
		subs:        subs,
		userReader:  userReader,
		imageStore:  imageStore,
	}
}

// Create валидирует и сохраняет рецепт целиком (поля + теги + ингредиенты)
// одной транзакцией, затем возвращает проекцию для ответа.
func (s *Service) Create(ctx context.Context, authorID int64, req WriteRequest) (*RecipeResponse, error) {
	if err := validateWrite(req); err != nil {
		return nil, err
	}

	resolvedTags, rows, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Image == "" {
		return nil, ErrImageRequired
	}
	imageURL, err := s.imageStore.SaveBase64(req.Image, "recipes")
	if err != nil {
		if errors.Is(err, images.ErrInvalidImage) {
			return nil, images.ErrInvalidImage
		}
		return nil, err
	}

	recipe := &domain.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imageURL,
		CookingTime: req.CookingTime,
	}

	if err := s.recipes.Create(ctx, recipe, resolvedTags, rows); err != nil {
		return nil, err
	}

	return s.Get(ctx, authorID, recipe.ID)
}

// Update полностью заменяет наборы тегов и ингредиентов рецепта.
// Право на изменение есть у автора и администратора.
func (s *Service) Update(ctx context.Context, userID int64, isAdmin bool, recipeID int64, req WriteRequest) (*RecipeResponse, error) {
	existing, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID && !isAdmin {
		return nil, ErrForbidden
	}

	if err := validateWrite(req); err != nil {
		return nil, err
	}

	resolvedTags, rows, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	imageURL := existing.Image
	if req.Image != "" {
		imageURL, err = s.imageStore.SaveBase64(req.Image, "recipes")
		if err != nil {
			return nil, err
		}
	}

	recipe := &domain.Recipe{
		ID:          recipeID,
		AuthorID:    existing.AuthorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imageURL,
		CookingTime: req.CookingTime,
	}

	if err := s.recipes.Update(ctx, recipe, resolvedTags, rows); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, recipeID)
}

func (s *Service) Delete(ctx context.Context, userID int64, isAdmin bool, recipeID int64) error {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.recipes.Delete(ctx, recipeID)
}

// Get возвращает проекцию рецепта. requesterID == 0 — аноним.
func (s *Service) Get(ctx context.Context, requesterID, recipeID int64) (*RecipeResponse, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, recipe, requesterID)
}

func (s *Service) List(ctx context.Context, requesterID int64, f ListFilters) ([]RecipeResponse, int64, error) {
	repoFilters := repository.RecipeFilters{
		AuthorID: f.AuthorID,
		TagSlugs: f.TagSlugs,
		Limit:    f.Limit,
		Offset:   f.Offset,
	}
	// фильтры "моё избранное"/"моя корзина" имеют смысл
	// только для авторизованного пользователя
	if requesterID > 0 {
		if f.IsFavorited {
			repoFilters.FavoritedBy = requesterID
		}
		if f.IsInShoppingCart {
			repoFilters.InCartOf = requesterID
		}
	}

	list, total, err := s.recipes.List(ctx, repoFilters)
	if err != nil {
		return nil, 0, err
	}

	out := make([]RecipeResponse, 0, len(list))
	for i := range list {
		resp, err := s.project(ctx, &list[i], requesterID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *resp)
	}
	return out, total, nil
}

// AddFavorite добавляет рецепт в избранное. Повторное добавление —
// конфликт, даже под гонкой (ограничение уникальности в БД).
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) (*RecipeShort, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.favorites.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyInFavorites
		}
		return nil, err
	}

	return shortOf(recipe), nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}

	removed, err := s.favorites.Remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInFavorites
	}
	return nil
}

func (s *Service) AddToCart(ctx context.Context, userID, recipeID int64) (*RecipeShort, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}

	return shortOf(recipe), nil
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}

	removed, err := s.cart.Remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInCart
	}
	return nil
}

// ShoppingList собирает текст списка покупок: ингредиенты всех рецептов
// корзины, сгруппированные по (имя, единица) с суммой количества.
func (s *Service) ShoppingList(ctx context.Context, userID int64) (filename, content string, err error) {
	count, err := s.cart.CountByUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if count == 0 {
		return "", "", ErrEmptyCart
	}

	items, err := s.recipes.ShoppingListItems(ctx, userID)
	if err != nil {
		return "", "", err
	}

	user, err := s.userReader.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	today := time.Now()

	var b strings.Builder
	fmt.Fprintf(&b, "Дата: %s\n\n", today.Format("2006-01-02"))
	fmt.Fprintf(&b, "%s должен купить:\n\n", user.FullName())
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s) - %d", item.Name, item.MeasurementUnit, item.Total)
	}
	fmt.Fprintf(&b, "\n\nпроект Foodgram (%d)", today.Year())

	return user.Username + "_shopping_list.txt", b.String(), nil
}

// resolveRefs загружает справочные строки по id из запроса.
// Отсутствующий id — "not found", а не ошибка валидации.
func (s *Service) resolveRefs(ctx context.Context, req WriteRequest) ([]domain.Tag, []domain.IngredientInRecipe, error) {
	resolvedTags, err := s.tags.GetByIDs(ctx, req.Tags)
	if err != nil {
		return nil, nil, err
	}
	if len(resolvedTags) != len(req.Tags) {
		return nil, nil, ErrTagNotFound
	}

	ids := make([]int64, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ids = append(ids, ing.ID)
	}
	resolvedIngredients, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(resolvedIngredients) != len(req.Ingredients) {
		return nil, nil, ErrIngredientNotFound
	}

	rows := make([]domain.IngredientInRecipe, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		rows = append(rows, domain.IngredientInRecipe{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	return resolvedTags, rows, nil
}

// project строит денормализованное представление рецепта
func (s *Service) project(ctx context.Context, recipe *domain.Recipe, requesterID int64) (*RecipeResponse, error) {
	isFavorited := false
	isInCart := false
	isSubscribed := false

	if requesterID > 0 {
		var err error
		if isFavorited, err = s.favorites.Exists(ctx, requesterID, recipe.ID); err != nil {
			return nil, err
		}
		if isInCart, err = s.cart.Exists(ctx, requesterID, recipe.ID); err != nil {
			return nil, err
		}
		if requesterID != recipe.AuthorID {
			if isSubscribed, err = s.subs.Exists(ctx, requesterID, recipe.AuthorID); err != nil {
				return nil, err
			}
		}
	}

	author := recipe.Author
	if author == nil {
		var err error
		author, err = s.userReader.GetByID(ctx, recipe.AuthorID)
		if err != nil {
			return nil, err
		}
	}

	ingredientViews := make([]IngredientView, 0, len(recipe.IngredientList))
	for _, row := range recipe.IngredientList {
		view := IngredientView{
			ID:     row.IngredientID,
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			view.Name = row.Ingredient.Name
			view.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredientViews = append(ingredientViews, view)
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []domain.Tag{}
	}

	return &RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           users.NewUserResponse(author, isSubscribed),
		Ingredients:      ingredientViews,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}, nil
}

func (s *Service) getRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func shortOf(r *domain.Recipe) *RecipeShort {
	return &RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
