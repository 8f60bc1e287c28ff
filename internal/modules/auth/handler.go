package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

// Handler manages HTTP interactions for registration and tokens
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.POST("/users", h.Register)
	api.POST("/auth/token/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/users/set_password", h.SetPassword)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.FieldError(c, http.StatusBadRequest, "email", "user with this email already exists.")
		case errors.Is(err, ErrUsernameTaken):
			response.FieldError(c, http.StatusBadRequest, "username", "user with this username already exists.")
		default:
			response.Errors(c, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, RegisteredUser{
		Email:     user.Email,
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Errors(c, http.StatusBadRequest, "Unable to log in with provided credentials.")
			return
		}
		response.Errors(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

func (h *Handler) SetPassword(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "new_password", "This field is required.")
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.FieldError(c, http.StatusBadRequest, "current_password", "Invalid password.")
			return
		}
		response.Errors(c, http.StatusInternalServerError, "Failed to set password")
		return
	}

	c.Status(http.StatusNoContent)
}
