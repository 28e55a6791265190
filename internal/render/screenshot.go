package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"splatviewer/internal/utils"
)

// ErrExport wraps screenshot failures: a frame size mismatch against the
// requested image dimensions, or an encoding/write failure. Export errors
// never affect the in-memory render state.
var ErrExport = errors.New("screenshot export failed")

// Screenshot renders the current frame if stale and writes it to w as an
// opaque PNG: the frame's own alpha channel carries blending state, so it is
// forced to 255 in the exported copy only.
func (r *Renderer) Screenshot(w io.Writer) error {
	frame, err := r.Frame()
	if err != nil {
		return err
	}

	width, height := r.Size()
	if len(frame) != width*height*4 {
		return fmt.Errorf("%w: frame is %d bytes, want %d for %dx%d",
			ErrExport, len(frame), width*height*4, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, frame)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

// SaveScreenshot writes a timestamped PNG into dir and returns its path.
func (r *Renderer) SaveScreenshot(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("splat-screenshot-%s.png", time.Now().Format("20060102-150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	defer f.Close()

	if err := r.Screenshot(f); err != nil {
		return "", err
	}

	utils.Info("Saved screenshot to %s", path)
	return path, nil
}
