package utils

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadSize is the largest image accepted by the upload endpoint (5MB).
	MaxUploadSize = 5 * 1024 * 1024
	// FileTooLargeMessage is returned for anything over MaxUploadSize.
	FileTooLargeMessage = "File too large. Max size is 5MB."
)

var (
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
		".svg":  true,
	}
	// formats imaging can decode; svg and webp are accepted on extension alone
	decodableExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// CleanFilename strips path components and anything outside [a-zA-Z0-9._-].
func CleanFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	filename = strings.ReplaceAll(filename, " ", "-")
	filename = unsafeChars.ReplaceAllString(filename, "")
	filename = strings.TrimLeft(filename, ".")
	if filename == "" || filename == "." {
		return "image"
	}
	return filename
}

// UniqueFilename prefixes the cleaned name with a millisecond timestamp.
func UniqueFilename(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), CleanFilename(original))
}

// ValidateImageFile checks the extension against the allowlist and, for
// raster formats, that the bytes actually decode as an image.
func ValidateImageFile(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("unsupported image format. Allowed formats: jpg, jpeg, png, gif, webp, svg")
	}
	if decodableExts[ext] {
		if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("file is not a valid %s image", strings.TrimPrefix(ext, "."))
		}
	}
	return nil
}

// ContentType guesses the MIME type from the extension.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
