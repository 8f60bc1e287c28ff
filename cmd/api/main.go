package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/auth"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/recipes"
	"foodgram/internal/modules/users"
	"foodgram/internal/pkg/images"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	mediaRoot := os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "./media"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	imageStore := images.NewStorage(mediaRoot, "/media")

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	usersService := users.NewService(userRepo, subscriptionRepo, recipeRepo)
	usersHandler := users.NewHandler(usersService)

	catalogService := catalog.NewService(tagRepo, ingredientRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	recipesService := recipes.NewService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		favoriteRepo,
		cartRepo,
		subscriptionRepo,
		userRepo,
		imageStore,
	)
	recipesHandler := recipes.NewHandler(recipesService)

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Use(gin.Logger())

	r.Static("/media", mediaRoot)

	api := r.Group("/api")
	{
		// public: чтение доступно анонимам, user_id проставляется
		// при наличии валидного токена
		public := api.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			authHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterRoutes(public)
			usersHandler.RegisterPublicRoutes(public)
			recipesHandler.RegisterPublicRoutes(public)
		}

		// protected: всё, что меняет состояние или привязано к пользователю
		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			usersHandler.RegisterProtectedRoutes(protected)
			recipesHandler.RegisterProtectedRoutes(protected)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
