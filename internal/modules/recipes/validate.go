package recipes

import (
	"regexp"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/validator"
)

// в имени должна быть хотя бы одна буква (любого алфавита),
// одни цифры и знаки препинания не принимаются
var nameLetter = regexp.MustCompile(`\p{L}`)

// validateWrite выполняет доменные проверки тела рецепта.
// Никаких побочных эффектов: существование тегов/ингредиентов
// проверяется отдельно, по уже загруженным строкам справочников.
func validateWrite(req WriteRequest) error {
	if fields := validator.Validate(req); fields != nil {
		if _, ok := fields["Name"]; ok {
			return ErrNameInvalid
		}
		if _, ok := fields["Tags"]; ok {
			return ErrTagsEmpty
		}
		if _, ok := fields["Ingredients"]; ok {
			return ErrIngredientsEmpty
		}
		if _, ok := fields["CookingTime"]; ok {
			return ErrCookingTimeRange
		}
		return ErrNameInvalid
	}

	if !nameLetter.MatchString(req.Name) {
		return ErrNameInvalid
	}

	if len(req.Tags) == 0 {
		return ErrTagsEmpty
	}
	seenTags := make(map[int64]struct{}, len(req.Tags))
	for _, id := range req.Tags {
		if _, ok := seenTags[id]; ok {
			return ErrTagsDuplicate
		}
		seenTags[id] = struct{}{}
	}

	if len(req.Ingredients) == 0 {
		return ErrIngredientsEmpty
	}
	seenIngredients := make(map[int64]struct{}, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if _, ok := seenIngredients[ing.ID]; ok {
			return ErrIngredientsDuplicate
		}
		seenIngredients[ing.ID] = struct{}{}

		if ing.Amount < domain.MinAmount || ing.Amount >= domain.MaxAmount {
			return ErrAmountOutOfRange
		}
	}

	if req.CookingTime < domain.MinCookingTime || req.CookingTime >= domain.MaxCookingTime {
		return ErrCookingTimeRange
	}

	return nil
}
