package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Field validators used by every form handler. Forms validate one field at a
// time, in declaration order, and stop at the first failure, so each helper
// returns a single *FieldError or nil. All validators are pure: a failed
// validation must never be preceded or followed by a network call.

// FieldError carries the offending field name and a human-readable message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks presence and basic shape of an email address.
func Email(email string) *FieldError {
	if email == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if !emailRe.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email format"}
	}
	return nil
}

// Password enforces presence and the minimum length accepted upstream.
func Password(password string) *FieldError {
	if password == "" {
		return &FieldError{Field: "password", Message: "Password is required"}
	}
	if len(password) < 6 {
		return &FieldError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

// Required rejects empty or whitespace-only values.
func Required(value, fieldName string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: fieldName, Message: fmt.Sprintf("%s is required", fieldName)}
	}
	return nil
}

// Number checks an inclusive range. Pass nil to skip a bound.
func Number(value int, fieldName string, min, max *int) *FieldError {
	if min != nil && value < *min {
		return &FieldError{Field: fieldName, Message: fmt.Sprintf("%s must be at least %d", fieldName, *min)}
	}
	if max != nil && value > *max {
		return &FieldError{Field: fieldName, Message: fmt.Sprintf("%s must be at most %d", fieldName, *max)}
	}
	return nil
}

// Min returns a pointer usable as a Number bound.
func Min(v int) *int { return &v }

// Max returns a pointer usable as a Number bound.
func Max(v int) *int { return &v }

// imageTypes are the only MIME types accepted for uploads.
var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// File validates an upload before any network activity. size is in bytes,
// maxSizeMB in whole megabytes; the limit itself is accepted, limit+1 byte is
// rejected.
func File(size int64, contentType, fieldName string, maxSizeMB int) *FieldError {
	maxBytes := int64(maxSizeMB) * 1024 * 1024
	if size > maxBytes {
		return &FieldError{Field: fieldName, Message: fmt.Sprintf("%s must be less than %dMB", fieldName, maxSizeMB)}
	}
	if !imageTypes[contentType] {
		return &FieldError{Field: fieldName, Message: "File must be an image (JPEG, PNG, or WebP)"}
	}
	return nil
}
