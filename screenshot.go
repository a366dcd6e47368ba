package mapnav

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. Each capture
// writes a PNG plus a text file holding the engine parameters and serialized
// state at that moment, both into ScreenshotDir.
func (v *View) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (v *View) flushScreenshots(screen *ebiten.Image) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	defer func() { v.screenshotQueue = v.screenshotQueue[:0] }()

	if err := os.MkdirAll(v.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[mapnav] screenshot: %v\n", err)
		return
	}

	img := readStraightAlpha(screen)
	info := v.engine.DescribeParameters() + "\n" + v.engine.SerializeState() + "\n"
	stamp := time.Now().Format("20060102_150405")
	for _, label := range v.screenshotQueue {
		base := filepath.Join(v.ScreenshotDir, stamp+"_"+sanitizeLabel(label))
		if err := writePNG(base+".png", img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[mapnav] screenshot: %v\n", err)
			continue
		}
		if err := os.WriteFile(base+".txt", []byte(info), 0o644); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[mapnav] screenshot: %v\n", err)
		}
	}
}

// readStraightAlpha copies the premultiplied frame into a straight-alpha
// image suitable for PNG encoding.
func readStraightAlpha(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	for i := 0; i < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = uint8(min(int(img.Pix[i+c])*255/a, 255))
		}
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces everything else
// with '_', and names empty labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, label)
}
