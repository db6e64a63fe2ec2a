package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldViolation is one failed binding rule, reported in error details.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// employee_id -> Employee Id
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError turns a gin binding error into INVALID_INPUT. The
// message names the first failing field; details list all of them.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	violations := make([]FieldViolation, 0, len(errs))
	for _, e := range errs {
		violations = append(violations, FieldViolation{Field: e.Field(), Rule: e.Tag()})
	}

	first := errs[0]
	field := formatFieldName(first.Field())

	var appErr *AppError
	switch first.Tag() {
	case "required":
		appErr = RequiredField(field)
	case "max":
		appErr = New(CodeInvalidInput, fmt.Sprintf("%s must be at most %s characters", field, first.Param()), http.StatusBadRequest)
	default:
		appErr = InvalidField(field)
	}
	return appErr.WithDetails(violations)
}
