package domain

import "time"

// Граничные значения для количества ингредиента и времени приготовления.
// Максимумы исключающие: amount < MaxAmount, cooking_time < MaxCookingTime.
const (
	MinAmount      = 1
	MaxAmount      = 32000
	MinCookingTime = 1
	MaxCookingTime = 32000
)

// Tag — справочные данные, управляются администратором и никогда
// не принадлежат конкретному рецепту.
type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200;uniqueIndex;not null"`
	Color string `json:"color" gorm:"size:7;uniqueIndex;not null"`
	Slug  string `json:"slug" gorm:"size:200;uniqueIndex;not null"`
}

func (Tag) TableName() string { return "tags" }

// Ingredient — справочник ингредиентов. Имя не уникально:
// одно имя может встречаться с разными единицами измерения.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:200;index;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null"`
}

func (Ingredient) TableName() string { return "ingredients" }

// Recipe — рецепт вместе с тегами и ингредиентами.
// Инвариант: после любой успешной записи у рецепта >=1 тег и >=1 ингредиент.
type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	Image       string    `json:"image" gorm:"size:500;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null"`
	PubDate     time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	Author         *User                `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags           []Tag                `json:"tags,omitempty" gorm:"many2many:recipe_tags"`
	IngredientList []IngredientInRecipe `json:"ingredient_list,omitempty" gorm:"foreignKey:RecipeID"`
}

func (Recipe) TableName() string { return "recipes" }

// IngredientInRecipe — связка рецепт×ингредиент с количеством.
// Одна строка на пару, дубликаты отклоняются при валидации.
type IngredientInRecipe struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

func (IngredientInRecipe) TableName() string { return "ingredient_in_recipes" }

// Favorite — избранный рецепт пользователя
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Favorite) TableName() string { return "favorites" }

// ShoppingCart — рецепт в корзине покупок пользователя
type ShoppingCart struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (ShoppingCart) TableName() string { return "shopping_carts" }
