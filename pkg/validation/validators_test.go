package validation_test

import (
	"testing"

	"go-posting-workflow/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestBoundaryAlphanumeric(t *testing.T) {
	cases := map[string]bool{
		"Senior Engineer":    true,
		"Engineer 3":         true,
		"  padded title  ":   true,
		"3D Artist":          true,
		"!Senior Engineer":   false,
		"Senior Engineer!":   false,
		"(Remote) Developer": false,
		"":                   false,
		"   ":                false,
		"Développeur Sénior": true,
	}
	for input, want := range cases {
		assert.Equal(t, want, validation.BoundaryAlphanumeric(input), "input %q", input)
	}
}

func TestPostingTitleTag(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type form struct {
		Title string `validate:"posting_title"`
	}

	assert.NoError(t, v.Struct(form{Title: "Senior Engineer"}))
	assert.NoError(t, v.Struct(form{Title: ""})) // optional without required
	assert.Error(t, v.Struct(form{Title: "Dev"}))
	assert.Error(t, v.Struct(form{Title: "!Senior Engineer"}))
}

func TestNumericAmountTag(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type form struct {
		Amount string `validate:"numeric_amount"`
	}

	assert.NoError(t, v.Struct(form{Amount: "85000"}))
	assert.NoError(t, v.Struct(form{Amount: "85000.50"}))
	assert.NoError(t, v.Struct(form{Amount: ""}))
	assert.Error(t, v.Struct(form{Amount: "85,000"}))
	assert.Error(t, v.Struct(form{Amount: "85.0.0"}))
	assert.Error(t, v.Struct(form{Amount: "-100"}))
}
