package errors

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxBlueprintLength bounds exchange strings accepted from untrusted callers.
const MaxBlueprintLength = 8 << 20

// ValidateBlueprintString performs cheap checks before decoding: non-empty,
// bounded, printable ASCII.
func ValidateBlueprintString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return New(ErrCodeInvalidBlueprint, "blueprint string cannot be empty")
	}
	if len(s) > MaxBlueprintLength {
		return New(ErrCodeInvalidBlueprint, "blueprint string too long (max %d bytes)", MaxBlueprintLength)
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x21 || c > 0x7e {
			return New(ErrCodeInvalidBlueprint, "blueprint string contains invalid byte 0x%02x at offset %d", c, i)
		}
	}
	return nil
}

// ValidateReportID checks that id is a UUID.
func ValidateReportID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid report id %q", id)
	}
	return nil
}

// ValidatePath validates a user-supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL ensures rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host")
	}
	return nil
}
