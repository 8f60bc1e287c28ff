package response

import "github.com/gin-gonic/gin"

// Errors возвращает ошибку операции в формате {"errors": "..."}
// (дубликат в избранном, подписка на себя и т.п.)
func Errors(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"errors": message})
}

// Detail возвращает ошибку доступа/поиска в формате {"detail": "..."}
func Detail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"detail": message})
}

// FieldErrors возвращает пофилдовые ошибки валидации:
// {"field": ["message", ...]}
func FieldErrors(c *gin.Context, statusCode int, fields map[string][]string) {
	c.JSON(statusCode, fields)
}

// FieldError — частый случай одной ошибки на одном поле
func FieldError(c *gin.Context, statusCode int, field, message string) {
	FieldErrors(c, statusCode, map[string][]string{field: {message}})
}
