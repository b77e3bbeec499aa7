package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"otp" validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Email: "a@x.com", Code: "123456"}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{})
	assert.EqualError(t, err, "field 'email' failed 'required'; field 'otp' failed 'required'")
}

func TestStruct_NonStructInput(t *testing.T) {
	assert.Error(t, Struct("not a struct"))
}
