package entity

type DownloadResult struct {
	FileName string `json:"file_name"`
	Location string `json:"location"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Notice   string `json:"notice"`
}
