package visualization

import (
	"sync"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// An ImageWriter accumulates published paths and renders the most recent one
// per color to a PNG. It is the sink the simulator uses when asked to leave a
// picture of the run behind.
type ImageWriter struct {
	mu     sync.Mutex
	width  int
	height int
	scale  float64
	latest map[RGBA]Path
}

// NewImageWriter returns a writer rendering onto a canvas of the given pixel
// size, with world coordinates multiplied by scale.
func NewImageWriter(width, height int, scale float64) *ImageWriter {
	return &ImageWriter{
		width:  width,
		height: height,
		scale:  scale,
		latest: map[RGBA]Path{},
	}
}

// PublishPath implements PathSink, keeping the latest path per color.
func (w *ImageWriter) PublishPath(path Path) {
	if len(path.Poses) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.latest[path.Color] = path
}

// Render draws the accumulated paths and writes them to the given PNG file.
func (w *ImageWriter) Render(filename string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.latest) == 0 {
		return errors.New("no paths have been published")
	}
	dc := gg.NewContext(w.width, w.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	// y grows upward in the operating frame, downward on the canvas
	for _, path := range w.latest {
		dc.SetRGB(path.Color.R, path.Color.G, path.Color.B)
		dc.SetLineWidth(2)
		for i, pose := range path.Poses {
			px := pose.Point.X * w.scale
			py := float64(w.height) - pose.Point.Y*w.scale
			if i == 0 {
				dc.MoveTo(px, py)
				continue
			}
			dc.LineTo(px, py)
		}
		dc.Stroke()
	}
	return dc.SavePNG(filename)
}
