package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Справочники открыты без токена и без пагинации
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/tags", h.ListTags)
	api.GET("/tags/:id", h.GetTag)
	api.GET("/ingredients", h.ListIngredients)
	api.GET("/ingredients/:id", h.GetIngredient)
}

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		response.Errors(c, http.StatusInternalServerError, "Failed to list tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *Handler) GetTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}

	tag, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.service.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Errors(c, http.StatusInternalServerError, "Failed to list ingredients")
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}

	ingredient, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
