// Package validate holds the explicit field validation helpers used by the
// request DTOs. Validation always runs before any store mutation and
// produces the per-field details array of the error envelope.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inklet-blog/core/internal/pkg/response"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// Errors collects field errors for one request.
type Errors []response.FieldError

// Empty reports whether validation passed.
func (e Errors) Empty() bool { return len(e) == 0 }

// Add appends a field error.
func (e *Errors) Add(field, message string) {
	*e = append(*e, response.FieldError{Field: field, Message: message})
}

// Required fails when the trimmed value is empty.
func (e *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, fmt.Sprintf("%s is required", field))
	}
}

// MaxLen fails when the value exceeds max characters.
func (e *Errors) MaxLen(field, value string, max int) {
	if len([]rune(value)) > max {
		e.Add(field, fmt.Sprintf("%s cannot be more than %d characters", field, max))
	}
}

// MinLen fails when the value is shorter than min characters.
func (e *Errors) MinLen(field, value string, min int) {
	if len([]rune(value)) < min {
		e.Add(field, fmt.Sprintf("%s must be at least %d characters long", field, min))
	}
}

// Email fails when the value is not a plausible email address.
func (e *Errors) Email(field, value string) {
	if value != "" && !emailPattern.MatchString(value) {
		e.Add(field, "please provide a valid email")
	}
}

// HexColor fails when the value is not a #RGB or #RRGGBB color.
func (e *Errors) HexColor(field, value string) {
	if value != "" && !hexColorPattern.MatchString(value) {
		e.Add(field, "color must be a valid hex color")
	}
}
