package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `validate:"required,max=5"`
	Email string `validate:"required,email"`
}

func TestValidate_OK(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "ok", Email: "a@b.io"}))
}

func TestValidate_FieldMap(t *testing.T) {
	fields := Validate(sample{Name: "", Email: "not-an-email"})

	assert.Equal(t, []string{"required"}, fields["Name"])
	assert.Equal(t, []string{"email"}, fields["Email"])
}
