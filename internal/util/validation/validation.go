package validation_utils

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RespondBindingError writes the 400 response for a failed ShouldBindJSON:
// a field->message map for validation failures, a generic msg for
// malformed JSON.
func RespondBindingError(ctx *gin.Context, err error) {
	if fields := FieldErrors(err); len(fields) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request format"})
}

func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[toSnakeCase(fieldError.Field())] = messageFor(fieldError)
	}

	return fields
}

func messageFor(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Must be at least " + fieldError.Param() + " characters long"
	case "max":
		return "Must be at most " + fieldError.Param() + " characters long"
	default:
		return "Invalid value"
	}
}

func toSnakeCase(name string) string {
	var builder strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			// Runs of capitals (ID, URL) collapse into one segment
			if i > 0 && !unicode.IsUpper(rune(name[i-1])) {
				builder.WriteByte('_')
			}
			builder.WriteRune(unicode.ToLower(r))
			continue
		}
		builder.WriteRune(r)
	}

	return builder.String()
}
