package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("posting_title", PostingTitle)
	_ = v.RegisterValidation("numeric_amount", NumericAmount)
}

// PostingTitle validates the shape of a job posting title: 5-100 characters
// and, after trimming, the first and last character must be alphanumeric.
func PostingTitle(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	if len([]rune(val)) < 5 || len([]rune(val)) > 100 {
		return false
	}
	return BoundaryAlphanumeric(val)
}

// BoundaryAlphanumeric reports whether the trimmed string starts and ends
// with a letter or digit. Empty strings fail.
func BoundaryAlphanumeric(s string) bool {
	trimmed := []rune(strings.TrimSpace(s))
	if len(trimmed) == 0 {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	return (unicode.IsLetter(first) || unicode.IsDigit(first)) &&
		(unicode.IsLetter(last) || unicode.IsDigit(last))
}

// NumericAmount validates that a string field holds a plain decimal amount.
// Salary bounds travel as strings so empty means "not provided".
func NumericAmount(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	dot := false
	for _, r := range val {
		if r == '.' {
			if dot {
				return false
			}
			dot = true
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
