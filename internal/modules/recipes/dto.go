package recipes

import (
	"foodgram/internal/domain"
	"foodgram/internal/modules/users"
)

// IngredientAmount — элемент списка ingredients в теле запроса
type IngredientAmount struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required"`
}

// WriteRequest — тело POST/PATCH рецепта. Image приходит строкой
// data-URL ("data:image/png;base64,..."); при PATCH может отсутствовать.
type WriteRequest struct {
	Ingredients []IngredientAmount `json:"ingredients" validate:"required"`
	Tags        []int64            `json:"tags" validate:"required"`
	Image       string             `json:"image"`
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int                `json:"cooking_time" validate:"required"`
}

// IngredientView — ингредиент в проекции рецепта, с количеством
type IngredientView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse — денормализованная проекция рецепта.
// Флаги считаются относительно запрашивающего; для анонима оба false.
type RecipeResponse struct {
	ID               int64              `json:"id"`
	Tags             []domain.Tag       `json:"tags"`
	Author           users.UserResponse `json:"author"`
	Ingredients      []IngredientView   `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// RecipeShort — ответ на добавление в избранное/корзину
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ListFilters — query-фильтры списка рецептов
type ListFilters struct {
	AuthorID         int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
	Offset           int
}
