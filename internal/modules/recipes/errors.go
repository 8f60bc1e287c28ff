package recipes

import "errors"

var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrForbidden          = errors.New("forbidden")

	ErrNameInvalid          = errors.New("name must contain letters")
	ErrTagsEmpty            = errors.New("tags must not be empty")
	ErrTagsDuplicate        = errors.New("duplicate tag")
	ErrIngredientsEmpty     = errors.New("ingredients must not be empty")
	ErrIngredientsDuplicate = errors.New("duplicate ingredient")
	ErrAmountOutOfRange     = errors.New("ingredient amount out of range")
	ErrCookingTimeRange     = errors.New("cooking time out of range")
	ErrImageRequired        = errors.New("image is required")

	ErrAlreadyInFavorites = errors.New("recipe already in favorites")
	ErrNotInFavorites     = errors.New("recipe not in favorites")
	ErrAlreadyInCart      = errors.New("recipe already in shopping cart")
	ErrNotInCart          = errors.New("recipe not in shopping cart")
	ErrEmptyCart          = errors.New("shopping cart is empty")
)
