package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate прогоняет struct-теги и возвращает ошибки по полям
// в формате {"Field": ["tag", ...]}, совместимом с response.FieldErrors.
// nil — если всё валидно.
func Validate(v interface{}) map[string][]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string][]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
	}
	return fields
}
