package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateLabel validates a node label for safety and renderability.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters other than newline and tab
//   - Maximum length of 1024 bytes
//
// Wrapping and measurement are handled downstream; this only rejects
// input that no renderer could display.
func ValidateLabel(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidLabel, "node label cannot be empty")
	}

	if len(text) > 1024 {
		return New(ErrCodeInvalidLabel, "node label too long (max 1024 bytes)")
	}

	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return New(ErrCodeInvalidLabel, "node label contains invalid control characters")
		}
	}

	return nil
}

// ValidFormats lists the renderable output formats.
var ValidFormats = []string{"svg", "png", "dot", "json"}

// ValidateFormat validates an output format name.
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (valid: %s)", format, strings.Join(ValidFormats, ", "))
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	return nil
}

// documentIDRegex matches canonical UUID strings.
var documentIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateDocumentID validates a stored document identifier.
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "document id cannot be empty")
	}
	if !documentIDRegex.MatchString(strings.ToLower(id)) {
		return New(ErrCodeInvalidInput, "invalid document id: %q", id)
	}
	return nil
}

// ValidateDocumentTitle validates a stored document title.
func ValidateDocumentTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "document title cannot be empty")
	}
	if len(title) > 256 {
		return New(ErrCodeInvalidInput, "document title too long (max 256 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document title contains invalid control characters")
		}
	}
	return nil
}
