package wallpaper

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"komari/pkg/logger"
)

// Setter writes the bitmap as PNG to the target path and runs the configured
// apply command on it.
type Setter struct {
	cfg Config
}

func NewSetter(cfg Config) *Setter {
	return &Setter{cfg: cfg}
}

func (s *Setter) SetBitmap(ctx context.Context, img image.Image) error {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Millisecond)
		defer cancel()
	}

	if err := s.write(img); err != nil {
		return err
	}

	if len(s.cfg.ApplyCommand) == 0 {
		return nil
	}

	args := append(append([]string{}, s.cfg.ApplyCommand[1:]...), s.cfg.TargetPath)
	out, err := exec.CommandContext(ctx, s.cfg.ApplyCommand[0], args...).CombinedOutput() //nolint
	if err != nil {
		logger.Error("apply command failed", "command", s.cfg.ApplyCommand[0], "output", string(out), "err", err)

		return fmt.Errorf("apply wallpaper: %w", err)
	}

	return nil
}

// write replaces the target file atomically.
func (s *Setter) write(img image.Image) error {
	dir := filepath.Dir(s.cfg.TargetPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".wallpaper-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("encode wallpaper: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.cfg.TargetPath)
}
