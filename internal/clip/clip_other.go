//go:build !darwin && !linux

package clip

// New returns a no-op backend; this platform has no supported clipboard.
func New() Backend {
	return newHeadless()
}
