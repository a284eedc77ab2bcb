package canopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestLoggerDefaultsToNop(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, Logger())
	assert.False(t, Logger().Core().Enabled(zapcore.FatalLevel))
}

func TestCycleIsLogged(t *testing.T) {
	logs := observeLogs(t, zapcore.DebugLevel)
	a, b := NewGroup("a"), NewGroup("b")
	a.AddChild(b)
	b.AddChild(a)

	entries := logs.FilterMessage("add child: would create a cycle").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "canopy", entries[0].LoggerName)
	assert.Equal(t, "b", entries[0].ContextMap()["parent"])
}

func TestDebugModeLogsFrames(t *testing.T) {
	logs := observeLogs(t, zapcore.DebugLevel)
	s, _, _ := paintScene()
	surface := &recordingSurface{available: true}

	s.Frame(surface)
	assert.Zero(t, logs.FilterMessage("frame").Len())

	s.SetDebugMode(true)
	s.Frame(surface)
	entries := logs.FilterMessage("frame").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, uint64(2), fields["frame"])
	assert.Equal(t, int64(2), fields["painted"])
}

func TestChildCountWarning(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)
	p := NewGroup("p")
	for i := 0; i <= debugMaxChildCount; i++ {
		p.AddChild(NewGroup(""))
	}
	assert.Equal(t, 1, logs.FilterMessage("child count exceeds threshold").Len())
}

func TestTreeDepthWarning(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)
	n := NewGroup("root")
	for i := 0; i < debugMaxTreeDepth; i++ {
		c := NewGroup("")
		n.AddChild(c)
		n = c
	}
	assert.Equal(t, 1, logs.FilterMessage("tree depth exceeds threshold").Len())
}
