package visualization

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"go.viam.com/localplanner/spatialmath"
)

func samplePath(color RGBA) Path {
	return Path{
		Frame: "odom",
		At:    time.Now(),
		Poses: []spatialmath.Pose{
			spatialmath.NewPose(0, 0, 0),
			spatialmath.NewPose(1, 1, 0),
			spatialmath.NewPose(2, 1, 0),
		},
		Color: color,
	}
}

func TestLogSink(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	sink := &LogSink{Logger: logger}
	sink.PublishPath(samplePath(RGBA{G: 1}))
	test.That(t, logs.FilterMessageSnippet("path published").Len(), test.ShouldEqual, 1)
}

func TestImageWriter(t *testing.T) {
	writer := NewImageWriter(100, 100, 10)

	err := writer.Render(filepath.Join(t.TempDir(), "empty.png"))
	test.That(t, err, test.ShouldNotBeNil)

	writer.PublishPath(samplePath(RGBA{G: 1}))
	writer.PublishPath(samplePath(RGBA{B: 1}))
	// empty paths are dropped
	writer.PublishPath(Path{Color: RGBA{R: 1}})

	out := filepath.Join(t.TempDir(), "paths.png")
	test.That(t, writer.Render(out), test.ShouldBeNil)
	info, err := os.Stat(out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}
