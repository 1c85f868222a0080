package clip

// headlessBackend is a no-op clipboard backend for environments without a
// display server (headless Linux servers, containers, CI).
// It never produces Watch events and always reports an empty clipboard.
type headlessBackend struct {
	watchCh chan struct{}
}

func newHeadless() Backend { return &headlessBackend{watchCh: make(chan struct{})} }

func (b *headlessBackend) Name() string                { return "headless (no-op)" }
func (b *headlessBackend) Snapshot() (Snapshot, error) { return Snapshot{}, nil }
func (b *headlessBackend) Watch() <-chan struct{}      { return b.watchCh }
func (b *headlessBackend) Close()                      {}
