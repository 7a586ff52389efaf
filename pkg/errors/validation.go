package errors

import (
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node and edge identifiers accepted from external input.
const MaxNodeIDLength = 256

// ValidateNodeID validates a node or edge identifier from external input.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of MaxNodeIDLength bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateFilename validates an output filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}

	return nil
}

// ValidateURI validates a backend connection string.
// The scheme must be one of the allowed schemes and a host must be present.
func ValidateURI(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "URI cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URI")
	}

	if len(schemes) > 0 && !slices.Contains(schemes, u.Scheme) {
		return New(ErrCodeInvalidInput, "URI scheme must be one of: %s", strings.Join(schemes, ", "))
	}

	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URI must include a host")
	}

	return nil
}
