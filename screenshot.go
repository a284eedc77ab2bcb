package canopy

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Screenshot queues a labeled snapshot of the next completed frame. It is
// taken after EndFrame when the frame's surface implements Snapshotter.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots hands every queued label to the surface.
func (s *Scene) flushScreenshots(surface Surface) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	snap, ok := surface.(Snapshotter)
	if !ok {
		logger().Debug("screenshot: surface cannot snapshot",
			zap.Int("dropped", len(s.screenshotQueue)))
		s.screenshotQueue = s.screenshotQueue[:0]
		return
	}
	for _, label := range s.screenshotQueue {
		path, err := snap.Snapshot(label)
		if err != nil {
			logger().Warn("screenshot failed", zap.String("label", label), zap.Error(err))
			continue
		}
		s.Screenshots.Emit(ScreenshotTaken{Label: label, Path: path})
	}
	s.screenshotQueue = s.screenshotQueue[:0]
}

// ScreenshotTaken is emitted after a queued snapshot was written.
type ScreenshotTaken struct {
	Label string
	Path  string
}

// SnapshotPath builds "<dir>/<stamp>_<label>.png" with the label sanitized.
func SnapshotPath(dir, label string, now time.Time) string {
	stamp := now.Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, SanitizeLabel(label)))
}

// SanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
