package validators

import (
	"reflect"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	specialRegex = regexp.MustCompile(`[\\^$*.\[\]{}()?"!@#%&/\\,><':;|_~` + "`" + `=+\-]`)
	hasSpaces    = regexp.MustCompile(`\s+`)
)

func HasUpper(fl validator.FieldLevel) bool {
	return anyRune(fl, unicode.IsUpper)
}

func HasLower(fl validator.FieldLevel) bool {
	return anyRune(fl, unicode.IsLower)
}

func HasDigit(fl validator.FieldLevel) bool {
	return anyRune(fl, unicode.IsDigit)
}

func HasSpecial(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return specialRegex.MatchString(val)
}

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return !hasSpaces.MatchString(field.String())
}

func anyRune(fl validator.FieldLevel, match func(rune) bool) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, ch := range val {
		if match(ch) {
			return true
		}
	}
	return false
}
