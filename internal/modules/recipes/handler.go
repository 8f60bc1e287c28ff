package recipes

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/images"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/response"
)

const defaultPageSize = 6

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Чтение рецептов открыто для анонимов
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/recipes", h.List)
	api.GET("/recipes/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/recipes", h.Create)
	protected.PATCH("/recipes/:id", h.Update)
	protected.DELETE("/recipes/:id", h.Delete)

	protected.POST("/recipes/:id/favorite", h.AddFavorite)
	protected.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
	protected.POST("/recipes/:id/shopping_cart", h.AddToCart)
	protected.DELETE("/recipes/:id/shopping_cart", h.RemoveFromCart)
	protected.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart)
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c, pageSize())

	filters := ListFilters{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      boolQuery(c, "is_favorited"),
		IsInShoppingCart: boolQuery(c, "is_in_shopping_cart"),
		Limit:            p.Limit,
		Offset:           p.Offset(),
	}
	if authorID, err := strconv.ParseInt(c.Query("author"), 10, 64); err == nil {
		filters.AuthorID = authorID
	}

	list, total, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), filters)
	if err != nil {
		response.Errors(c, http.StatusInternalServerError, "Failed to list recipes")
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(c, p, total, list))
}

func (h *Handler) Get(c *gin.Context) {
	recipeID, ok := recipeParam(c)
	if !ok {
		return
	}

	recipe, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), recipeID)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			response.Detail(c, http.StatusNotFound, "Not found.")
			return
		}
		response.Errors(c, http.StatusInternalServerError, "Failed to get recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) Create(c *gin.Context) {
	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipe, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *Handler) Update(c *gin.Context) {
	recipeID, ok := recipeParam(c)
	if !ok {
		return
	}

	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipe, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_admin"), recipeID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) Delete(c *gin.Context) {
	recipeID, ok := recipeParam(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_admin"), recipeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	recipeID, ok := recipeParam(c)
	if !ok {
		return
	}

	short, err := h.service.AddFavorite(c.Request.Context(), c.GetInt64("user_id"), recipeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, short)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	recipeID, ok := recipeParam(c)
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), c.GetInt64("user_id"), recipeID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddToCart(c *gin.Context) {
	recipeID, ok := recipeParam(c)
	if !ok {
		return
	}

	short, err := h.service.AddToCart(c.Request.Context(), c.GetInt64("user_id"), recipeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, short)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	recipeID, ok := recipeParam(c)
	if !ok {
		return
	}

	if err := h.service.RemoveFromCart(c.Request.Context(), c.GetInt64("user_id"), recipeID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	filename, content, err := h.service.ShoppingList(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			response.Errors(c, http.StatusBadRequest, "Список покупок пуст")
			return
		}
		response.Errors(c, http.StatusInternalServerError, "Failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

// writeError переводит ошибки сервиса в HTTP-статусы:
// валидация и конфликты — 400, отсутствующие id — 404, чужой рецепт — 403.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNameInvalid):
		response.FieldError(c, http.StatusBadRequest, "name", "Название не может состоять только из цифр и знаков")
	case errors.Is(err, ErrTagsEmpty):
		response.FieldError(c, http.StatusBadRequest, "tags", "Нужен хотя бы один тег")
	case errors.Is(err, ErrTagsDuplicate):
		response.FieldError(c, http.StatusBadRequest, "tags", "Теги не должны повторяться")
	case errors.Is(err, ErrIngredientsEmpty):
		response.FieldError(c, http.StatusBadRequest, "ingredients", "Нужен хотя бы один ингредиент")
	case errors.Is(err, ErrIngredientsDuplicate):
		response.FieldError(c, http.StatusBadRequest, "ingredients", "Ингредиенты не должны повторяться")
	case errors.Is(err, ErrAmountOutOfRange):
		response.FieldError(c, http.StatusBadRequest, "ingredients", "Количество должно быть от 1 до 32000")
	case errors.Is(err, ErrCookingTimeRange):
		response.FieldError(c, http.StatusBadRequest, "cooking_time", "Время приготовления должно быть от 1 до 32000")
	case errors.Is(err, ErrImageRequired), errors.Is(err, images.ErrInvalidImage):
		response.FieldError(c, http.StatusBadRequest, "image", "Некорректное изображение")
	case errors.Is(err, ErrAlreadyInFavorites):
		response.Errors(c, http.StatusBadRequest, "Рецепт уже в избранном")
	case errors.Is(err, ErrAlreadyInCart):
		response.Errors(c, http.StatusBadRequest, "Рецепт уже в списке покупок")
	case errors.Is(err, ErrRecipeNotFound),
		errors.Is(err, ErrTagNotFound),
		errors.Is(err, ErrIngredientNotFound),
		errors.Is(err, ErrNotInFavorites),
		errors.Is(err, ErrNotInCart):
		response.Detail(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, ErrForbidden):
		response.Detail(c, http.StatusForbidden, "You do not have permission to perform this action.")
	default:
		response.Errors(c, http.StatusInternalServerError, "Internal server error")
	}
}

func recipeParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func boolQuery(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "1" || v == "true" || v == "True"
}

func pageSize() int {
	if v, err := strconv.Atoi(os.Getenv("PAGE_SIZE")); err == nil && v > 0 {
		return v
	}
	return defaultPageSize
}
