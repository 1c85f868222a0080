//go:build darwin

package clip

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
//
// NSInteger marklip_changeCount() {
//     return [[NSPasteboard generalPasteboard] changeCount];
// }
//
// int marklip_hasHTML() {
//     NSArray *types = [[NSPasteboard generalPasteboard] types];
//     return [types containsObject:NSPasteboardTypeHTML] ? 1 : 0;
// }
import "C"

import (
	"log/slog"
	"time"

	"golang.design/x/clipboard"
)

const darwinPollInterval = 100 * time.Millisecond

type darwinBackend struct {
	lastChange C.NSInteger
	watchCh    chan struct{}
	done       chan struct{}
}

// New returns the macOS clipboard backend.
// clipboard.Init is called here rather than in init() so that sub-commands
// (register, unregister, run) that never construct a Backend don't pay for
// it.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard init failed", "err", err)
	}
	b := &darwinBackend{
		lastChange: C.marklip_changeCount(),
		watchCh:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	go b.poll()
	return b
}

func (b *darwinBackend) Name() string { return "macOS NSPasteboard" }

func (b *darwinBackend) poll() {
	t := time.NewTicker(darwinPollInterval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			cc := C.marklip_changeCount()
			if cc != b.lastChange {
				b.lastChange = cc
				select {
				case b.watchCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (b *darwinBackend) Snapshot() (Snapshot, error) {
	return Snapshot{
		Text:     string(clipboard.Read(clipboard.FmtText)),
		HasHTML:  C.marklip_hasHTML() != 0,
		HasImage: clipboard.Read(clipboard.FmtImage) != nil,
	}, nil
}

func (b *darwinBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *darwinBackend) Close()                { close(b.done) }
