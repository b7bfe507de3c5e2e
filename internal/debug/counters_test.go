package debug

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestMatCounters(t *testing.T) {
	ResetMatCounters()

	CountMatAlloc()
	CountMatAlloc()
	CountMatRelease()

	allocs, releases := MatBalance()
	assert.Equal(t, int64(2), allocs)
	assert.Equal(t, int64(1), releases)

	CountMatRelease()
	allocs, releases = MatBalance()
	assert.Equal(t, allocs, releases)

	ResetMatCounters()
	allocs, releases = MatBalance()
	assert.Zero(t, allocs)
	assert.Zero(t, releases)
}

func TestMonitorDisabledIsInert(t *testing.T) {
	m := NewMonitor(quietLogger(), false)

	// None of these should block or panic without a started loop.
	m.Start()
	m.Snapshot()
	m.Summary()
	m.Stop()
}

func TestMonitorStartStop(t *testing.T) {
	logger := quietLogger()
	logger.SetLevel(logrus.DebugLevel)

	m := NewMonitor(logger, true)
	m.Start()
	m.Snapshot()
	m.Stop()

	// Stop must be idempotent.
	m.Stop()
}
