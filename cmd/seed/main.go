package main

import (
	"encoding/csv"
	"io"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodgram/internal/database"
	"foodgram/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "foodgram.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ingredient_in_recipes")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM shopping_carts")
	db.Exec("DELETE FROM recipe_tags")
	db.Exec("DELETE FROM recipes")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM ingredients")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM users")

	// ================== TAGS ==================
	log.Println("Creating tags...")
	tags := []domain.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Обед", Color: "#49B64E", Slug: "lunch"},
		{Name: "Ужин", Color: "#8775D2", Slug: "dinner"},
	}
	for i := range tags {
		db.Create(&tags[i])
	}

	// ================== INGREDIENTS ==================
	csvPath := os.Getenv("INGREDIENTS_CSV")
	if csvPath == "" {
		csvPath = "data/ingredients.csv"
	}
	count, err := loadIngredients(db, csvPath)
	if err != nil {
		log.Println("Ingredients CSV not loaded:", err)
	} else {
		log.Printf("Loaded %d ingredients from %s", count, csvPath)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@foodgram.local",
		Username:     "admin",
		FirstName:    "Администратор",
		LastName:     "Foodgram",
		PasswordHash: string(adminHash),
		IsAdmin:      true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@foodgram.local / admin123")

	userHash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	author := domain.User{
		Email:        "chef@foodgram.local",
		Username:     "chef",
		FirstName:    "Иван",
		LastName:     "Поваров",
		PasswordHash: string(userHash),
	}
	db.Create(&author)

	// ================== DEMO RECIPE ==================
	var flour, egg domain.Ingredient
	db.Where("name = ?", "мука").First(&flour)
	db.Where("name = ?", "яйцо").First(&egg)
	if flour.ID == 0 {
		flour = domain.Ingredient{Name: "мука", MeasurementUnit: "г"}
		db.Create(&flour)
	}
	if egg.ID == 0 {
		egg = domain.Ingredient{Name: "яйцо", MeasurementUnit: "шт."}
		db.Create(&egg)
	}

	recipe := domain.Recipe{
		AuthorID:    author.ID,
		Name:        "Блины",
		Text:        "Смешать, пожарить.",
		Image:       "/media/recipes/demo.png",
		CookingTime: 30,
	}
	db.Create(&recipe)
	db.Model(&recipe).Association("Tags").Replace([]domain.Tag{tags[0]})
	db.Create(&[]domain.IngredientInRecipe{
		{RecipeID: recipe.ID, IngredientID: flour.ID, Amount: 200},
		{RecipeID: recipe.ID, IngredientID: egg.ID, Amount: 2},
	})

	log.Println("Seed complete")
}

// loadIngredients читает CSV "название,единица" и вставляет строки.
// Формат совпадает с исходным дампом справочника ингредиентов.
func loadIngredients(db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		ing := domain.Ingredient{Name: record[0], MeasurementUnit: record[1]}
		if err := db.Create(&ing).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
