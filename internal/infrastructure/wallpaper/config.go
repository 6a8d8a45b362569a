package wallpaper

type Config struct {
	TargetPath string `yaml:"target_path"`
	// ApplyCommand runs after the bitmap is written, with the target path
	// appended as its last argument. Empty means write only.
	ApplyCommand []string `yaml:"apply_command"`
	Timeout      int64    `yaml:"timeout_in_ms"`
}
