package canopy

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var globalLogger atomic.Pointer[zap.Logger]

// SetLogger installs the logger used for scene-graph diagnostics. A nil
// logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	globalLogger.Store(l.Named("canopy"))
}

// Logger returns the logger used for scene-graph diagnostics.
func Logger() *zap.Logger {
	return logger()
}

func logger() *zap.Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// debugStats holds per-frame timing and paint metrics.
// Only logged when Scene debug mode is on.
type debugStats struct {
	layoutTime time.Duration
	paintTime  time.Duration
	laidOut    bool
	paint      paintStats
}

// debugLog writes timing and paint stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logger().Debug("frame",
		zap.Uint64("frame", s.frame),
		zap.Bool("layout", stats.laidOut),
		zap.Duration("layout_time", stats.layoutTime),
		zap.Duration("paint_time", stats.paintTime),
		zap.Int("visited", stats.paint.visited),
		zap.Int("painted", stats.paint.painted),
		zap.Int("skipped", stats.paint.skipped))
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := n.Depth() + 1
	if depth > debugMaxTreeDepth {
		logger().Warn("tree depth exceeds threshold",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
			zap.String("node", n.Name))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger().Warn("child count exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount))
	}
}
