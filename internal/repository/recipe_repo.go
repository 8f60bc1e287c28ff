package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

// RecipeFilters — фильтры списка рецептов. FavoritedBy/InCartOf
// ограничивают выборку относительно конкретного пользователя.
type RecipeFilters struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64
	InCartOf    int64
	Limit       int
	Offset      int
}

// ShoppingListItem — строка агрегированного списка покупок
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Total           int
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create сохраняет рецепт вместе с тегами и строками ингредиентов
// одной транзакцией: частичная запись не должна быть видна никогда.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, rows []domain.IngredientInRecipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "IngredientList", "Author").Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		for i := range rows {
			rows[i].RecipeID = recipe.ID
		}
		return tx.Create(&rows).Error
	})
}

// Update перезаписывает поля рецепта и полностью заменяет наборы тегов
// и ингредиентов. Merge-семантики нет: старые строки удаляются и
// вставляются заново внутри одной транзакции, поэтому параллельный
// читатель не увидит рецепт без тегов или ингредиентов.
func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, rows []domain.IngredientInRecipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Recipe{ID: recipe.ID}).
			Select("Name", "Text", "Image", "CookingTime").
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"image":        recipe.Image,
				"cooking_time": recipe.CookingTime,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&domain.Recipe{ID: recipe.ID}).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].RecipeID = recipe.ID
		}
		return tx.Create(&rows).Error
	})
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("IngredientList.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete удаляет рецепт; строки ингредиентов, избранное и корзины
// зачищаются здесь же, чтобы не полагаться на каскады sqlite.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&domain.Recipe{}, id).Error
	})
}

// List возвращает рецепты по убыванию даты публикации
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilters) ([]domain.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if f.AuthorID > 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		// подзапрос вместо JOIN: рецепт с несколькими подходящими
		// тегами не должен дублироваться ни в Count, ни в выдаче
		tagged := r.db.Model(&domain.Tag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Where("tags.slug IN ?", f.TagSlugs)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if f.FavoritedBy > 0 {
		q = q.Joins("JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?", f.FavoritedBy)
	}
	if f.InCartOf > 0 {
		q = q.Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?", f.InCartOf)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []domain.Recipe
	err := q.
		Preload("Author").
		Preload("Tags").
		Preload("IngredientList.Ingredient").
		Order("recipes.pub_date DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&recipes).Error

	return recipes, total, err
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// ListByAuthor — свежие рецепты автора для краткого представления в подписках
func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recipes []domain.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}

// ShoppingListItems агрегирует ингредиенты всех рецептов в корзине
// пользователя: GROUP BY имя+единица, SUM(amount), сортировка по имени.
func (r *RecipeRepository) ShoppingListItems(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.WithContext(ctx).
		Model(&domain.IngredientInRecipe{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_in_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_in_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_in_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	return items, err
}
