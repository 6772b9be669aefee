// Package export turns rendered surfaces into files: lossless PNG
// encoding, prompt-derived filenames, and optional rescaling.
package export

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/promptink/promptink/pkg/errors"
)

// DefaultName is the filename token used when a prompt sanitizes to nothing.
const DefaultName = "artwork"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives a safe filename token from prompt text: lowercased,
// with every run of non-alphanumeric characters collapsed into a single
// separator. An all-symbol prompt falls back to DefaultName.
//
//	Filename("Nebulous Aurora!! 2024") == "nebulous-aurora-2024"
//	Filename("!!!") == "artwork"
func Filename(prompt string) string {
	s := strings.ToLower(strings.TrimSpace(prompt))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return DefaultName
	}
	return s
}

// PNG encodes an image as lossless PNG bytes.
func PNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no image to encode")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Scale resamples an image by the given factor using Lanczos filtering.
// A factor of 1 (or anything non-positive) returns the image unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if img == nil || factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 || h < 1 {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// WriteFile encodes an image as PNG and writes it to path, creating
// parent directories as needed.
func WriteFile(path string, img image.Image) error {
	data, err := PNG(img)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
