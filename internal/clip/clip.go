// Package clip inspects the system clipboard so the launcher can tell which
// conversions make sense right now. Build constraints select the
// implementation:
//
//	clip_darwin.go   — macOS via golang.design/x/clipboard + cgo NSPasteboard queries
//	clip_linux.go    — Linux via golang.design/x/clipboard, polling only
//	clip_other.go    — headless stub
//
// The launcher never writes the clipboard; marklip owns all clipboard I/O.
package clip

// Snapshot is what the clipboard held at one instant.
type Snapshot struct {
	Text     string // plain-text flavour, "" when absent
	HasHTML  bool   // an HTML flavour is present
	HasImage bool
}

// Backend is the interface that all platform clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Snapshot reads the current clipboard contents.
	Snapshot() (Snapshot, error)

	// Watch returns a channel that receives a signal whenever the clipboard
	// changes. The channel is never closed. On platforms without native change
	// notification this is implemented via polling.
	Watch() <-chan struct{}

	// Close releases any resources held by the backend.
	Close()
}

// Enablement says which conversion actions apply to a snapshot.
type Enablement struct {
	Auto       bool
	ToHTML     bool
	ToMarkdown bool
}

// Enable computes action availability. Any non-empty text counts, including
// whitespace-only text: marklip decides what to do with it.
func Enable(s Snapshot) Enablement {
	hasText := s.Text != ""
	return Enablement{
		Auto:       hasText || s.HasHTML,
		ToHTML:     hasText,
		ToMarkdown: s.HasHTML,
	}
}
