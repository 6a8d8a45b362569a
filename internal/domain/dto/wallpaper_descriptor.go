package dto

type WallpaperDescriptor struct {
	ID            string   `json:"id"`
	PostID        string   `json:"post_id"`
	ImageURL      string   `json:"image_url"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Title         string   `json:"title"`
	Tags          []string `json:"tags"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	FileSize      int64    `json:"file_size"`
	FileSizeLabel string   `json:"file_size_label"`
	Rating        string   `json:"rating"`
	Category      string   `json:"category"`
	Featured      bool     `json:"featured"`
	CreatedAt     int64    `json:"created_at"`
	CuratorNotes  string   `json:"curator_notes,omitempty"`
	Source        string   `json:"source,omitempty"`
	SourceLabel   string   `json:"source_label,omitempty"`
	Status        string   `json:"status"`
}
