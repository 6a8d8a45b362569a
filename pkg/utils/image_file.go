package utils

import (
	"regexp"
	"strings"
)

const DefaultImageExtension = "png"

var (
	unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

	// imageExtensions lists the extensions kept from a source URL.
	imageExtensions = map[string]struct{}{
		"jpg":  {},
		"jpeg": {},
		"png":  {},
		"webp": {},
		"gif":  {},
	}
)

// SanitizeFileName replaces every character outside [a-zA-Z0-9._-] with '_'.
func SanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// WallpaperFileName returns the base name a saved wallpaper gets, without
// extension. Untitled wallpapers are named after their post id.
func WallpaperFileName(title, postID string) string {
	if title == "" {
		title = "wallpaper_" + postID
	}

	return SanitizeFileName(title)
}

// ImageExtension extracts a known image extension from url, falling back to
// png.
func ImageExtension(url string) string {
	i := strings.LastIndex(url, ".")
	if i < 0 {
		return DefaultImageExtension
	}

	ext := strings.ToLower(url[i+1:])
	if _, ok := imageExtensions[ext]; !ok {
		return DefaultImageExtension
	}

	return ext
}

func ImageMimeType(ext string) string {
	return "image/" + ext
}

// IsImageMimeType reports whether mimeType (parameters allowed) is an image type.
func IsImageMimeType(mimeType string) bool {
	cleaned := strings.TrimSpace(strings.Split(mimeType, ";")[0])

	return strings.HasPrefix(cleaned, "image/")
}
