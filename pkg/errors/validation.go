package errors

import (
	"strings"
	"unicode"
)

// ValidateHexColor validates a 6-digit hex color string of the form
// #rrggbb (lowercase or uppercase digits).
func ValidateHexColor(s string) error {
	if len(s) != 7 || s[0] != '#' {
		return New(ErrCodeInvalidFormat, "color must be of the form #rrggbb: %q", s)
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return New(ErrCodeInvalidFormat, "color contains non-hex digit: %q", s)
		}
	}
	return nil
}

// ValidateScale validates an output scale factor. Scales are clamped to a
// sane range so a typo cannot request a multi-gigabyte raster.
func ValidateScale(scale float64) error {
	if scale <= 0 {
		return New(ErrCodeInvalidScale, "scale must be positive, got %v", scale)
	}
	if scale > 8 {
		return New(ErrCodeInvalidScale, "scale too large (max 8), got %v", scale)
	}
	return nil
}

// ValidateOutputPath validates a file output path for safety.
// It prevents control characters and unreasonable lengths; relative and
// absolute paths are both fine for CLI output.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateListenAddr validates a host:port listen address for the serve
// command. The check is lightweight; net.Listen does the real work.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "listen address cannot be empty")
	}
	if !strings.Contains(addr, ":") {
		return New(ErrCodeInvalidInput, "listen address must be host:port, got %q", addr)
	}
	return nil
}
