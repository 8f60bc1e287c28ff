package users

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

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

// Открытые маршруты: списки и профили читаются без токена
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me", h.Me)
	protected.GET("/users/subscriptions", h.Subscriptions)
	protected.POST("/users/:id/subscribe", h.Subscribe)
	protected.DELETE("/users/:id/subscribe", h.Unsubscribe)
}

func (h *Handler) ListUsers(c *gin.Context) {
	p := pagination.FromQuery(c, pageSize())

	users, total, err := h.service.ListUsers(c.Request.Context(), c.GetInt64("user_id"), p.Limit, p.Offset())
	if err != nil {
		response.Errors(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(c, p, total, users))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Detail(c, http.StatusNotFound, "Not found.")
			return
		}
		response.Errors(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.GetUser(c.Request.Context(), userID, userID)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Subscriptions(c *gin.Context) {
	p := pagination.FromQuery(c, pageSize())

	subs, total, err := h.service.Subscriptions(
		c.Request.Context(),
		c.GetInt64("user_id"),
		p.Limit,
		p.Offset(),
		recipesLimit(c),
	)
	if err != nil {
		response.Errors(c, http.StatusInternalServerError, "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(c, p, total, subs))
}

func (h *Handler) Subscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), c.GetInt64("user_id"), authorID, recipesLimit(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSubscribe):
			response.Errors(c, http.StatusBadRequest, "Нельзя подписаться на самого себя")
		case errors.Is(err, ErrAlreadySubscribed):
			response.Errors(c, http.StatusBadRequest, "Вы уже подписаны на этого автора")
		case errors.Is(err, ErrUserNotFound):
			response.Detail(c, http.StatusNotFound, "Not found.")
		default:
			response.Errors(c, http.StatusInternalServerError, "Failed to subscribe")
		}
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), c.GetInt64("user_id"), authorID); err != nil {
		switch {
		case errors.Is(err, ErrNotSubscribed):
			response.Errors(c, http.StatusBadRequest, "Вы не были подписаны на этого автора")
		case errors.Is(err, ErrUserNotFound):
			response.Detail(c, http.StatusNotFound, "Not found.")
		default:
			response.Errors(c, http.StatusInternalServerError, "Failed to unsubscribe")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func recipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return 0 // без ограничения
	}
	return limit
}

func pageSize() int {
	if v, err := strconv.Atoi(os.Getenv("PAGE_SIZE")); err == nil && v > 0 {
		return v
	}
	return defaultPageSize
}
