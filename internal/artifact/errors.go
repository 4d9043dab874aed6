package artifact

import "errors"

var (
	// ErrEmptyFile is returned when an upload has no content.
	ErrEmptyFile = errors.New("empty file")

	// ErrInvalidFilename is returned when the filename fails validation.
	ErrInvalidFilename = errors.New("invalid filename")
)

// ValidateFilename checks if the filename is safe for use.
// Returns ErrInvalidFilename if validation fails.
//
// Validation rules:
//   - Must not be empty
//   - Must not exceed 255 characters
//   - Must not contain path separators (/, \)
//   - Must not contain null bytes
//   - Must not be "." or ".." (path traversal)
func ValidateFilename(name string) error {
	if name == "" {
		return ErrInvalidFilename
	}
	if len(name) > 255 {
		return ErrInvalidFilename
	}
	for _, c := range name {
		if c == '/' || c == '\\' || c == '\x00' {
			return ErrInvalidFilename
		}
	}
	if name == "." || name == ".." {
		return ErrInvalidFilename
	}
	return nil
}
