// Mat allocation accounting shared by the vision pipeline and tests
package debug

import "sync/atomic"

var (
	matAllocs   atomic.Int64
	matReleases atomic.Int64
)

// CountMatAlloc records one native buffer allocation.
func CountMatAlloc() {
	matAllocs.Add(1)
}

// CountMatRelease records one native buffer release.
func CountMatRelease() {
	matReleases.Add(1)
}

// MatBalance returns the running allocation and release totals.
func MatBalance() (allocs, releases int64) {
	return matAllocs.Load(), matReleases.Load()
}

// ResetMatCounters zeroes both totals. Intended for test setup.
func ResetMatCounters() {
	matAllocs.Store(0)
	matReleases.Store(0)
}
