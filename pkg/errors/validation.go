package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds element identifiers accepted from payloads.
const maxIDLength = 512

// ValidateID validates a node or edge identifier taken from a payload.
//
// The rules are conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 512 bytes
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid control characters", kind)
		}
	}
	return nil
}

// ValidatePropertyKey validates a configured property key such as the
// cluster key or the root-node key.
func ValidatePropertyKey(option, key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidConfig, "%s must not be blank", option)
	}
	if strings.ContainsRune(key, '\x00') {
		return New(ErrCodeInvalidConfig, "%s contains a null byte", option)
	}
	return nil
}
