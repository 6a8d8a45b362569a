package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// In-memory field names. Storage names are resolved by the database layer.
const (
	FieldID           = "id"
	FieldPostID       = "postId"
	FieldImageURL     = "imageUrl"
	FieldThumbnailURL = "thumbnailUrl"
	FieldTitle        = "title"
	FieldTags         = "tags"
	FieldWidth        = "width"
	FieldHeight       = "height"
	FieldFileSize     = "fileSize"
	FieldRating       = "rating"
	FieldFeatured     = "featured"
	FieldDateAdded    = "dateAdded"
	FieldCuratorNotes = "curatorNotes"
	FieldSource       = "source"
	FieldStatus       = "status"
)

// Wallpaper is a read-only snapshot of one curated wallpaper document.
// ID always mirrors the document key.
type Wallpaper struct {
	ID           string
	PostID       string
	ImageURL     string
	ThumbnailURL string
	Title        string
	Tags         []string
	Width        int
	Height       int
	FileSize     int64
	Rating       string
	Featured     bool
	DateAdded    *time.Time
	CuratorNotes string
	Source       string
	Status       string
}

// Category is the rating with its first letter upper-cased.
func (w Wallpaper) Category() string {
	return capitalize(w.Rating)
}

// CreatedAt returns DateAdded in Unix milliseconds, or 0 when unset.
func (w Wallpaper) CreatedAt() int64 {
	if w.DateAdded == nil {
		return 0
	}

	return w.DateAdded.UnixMilli()
}

func (w Wallpaper) StatusLabel() string {
	return capitalize(w.Status)
}

// SourceLabel names the site the artwork came from.
func (w Wallpaper) SourceLabel() string {
	switch {
	case strings.Contains(w.Source, "pixiv.net"):
		return "View on Pixiv"
	case strings.Contains(w.Source, "deviantart.com"):
		return "View on DeviantArt"
	case strings.Contains(w.Source, "twitter.com"), strings.Contains(w.Source, "x.com"):
		return "View on Twitter/X"
	case strings.Contains(w.Source, "artstation.com"):
		return "View on ArtStation"
	case strings.Contains(w.Source, "danbooru.donmai.us"):
		return "View on Danbooru"
	default:
		return "View Source"
	}
}

// HumanFileSize formats FileSize with binary units, e.g. "1.5 MB".
func (w Wallpaper) HumanFileSize() string {
	if w.FileSize == 0 {
		return "Unknown"
	}

	units := []string{"B", "KB", "MB", "GB"}
	size := float64(w.FileSize)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	return fmt.Sprintf("%.1f %s", size, units[unit])
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[n:]
}
