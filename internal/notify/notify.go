// Package notify delivers user-visible success and error messages.
//
// Delivery is best-effort and never blocks the caller: the platform
// mechanism is chosen at build time (see notify_darwin.go, notify_linux.go,
// notify_other.go) and runs in the background. Callers that are about to
// exit call Flush so pending deliveries are not lost with the process.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/marklip-launcher/internal/runner"
)

// Severity classifies a notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "success"
}

// Event is one notification. It is never persisted.
type Event struct {
	Severity Severity
	Title    string
	Body     string
}

// Sink accepts messages for the user. Implementations must not block on, or
// fail because of, delivery.
type Sink interface {
	Success(message string)
	Error(message string)
}

// Title returns the notification title for app at the given severity.
// Errors are distinguished by an " Error" suffix.
func Title(app string, sev Severity) string {
	if sev == SeverityError {
		return app + " Error"
	}
	return app
}

// deliverTimeout bounds a single background delivery so Flush cannot hang on
// a wedged notification helper.
const deliverTimeout = 10 * time.Second

// Notifier is the concrete Sink. Each event is logged and handed to a
// platform deliverer on its own goroutine.
type Notifier struct {
	app     string
	deliver func(ctx context.Context, ev Event) error
	wg      sync.WaitGroup
}

// New returns a Notifier that shows notifications with the platform's
// native mechanism, spawning helpers through r.
func New(app string, r runner.Runner) *Notifier {
	return &Notifier{app: app, deliver: systemDeliverer(r)}
}

// NewLog returns a Notifier that only writes events to the log. Used when
// no notification helper is wanted (headless, tests, --notifier=log).
func NewLog(app string) *Notifier {
	return &Notifier{app: app}
}

// Success shows a success-styled notification.
func (n *Notifier) Success(message string) { n.send(SeveritySuccess, message) }

// Error shows an error-styled notification.
func (n *Notifier) Error(message string) { n.send(SeverityError, message) }

// Flush waits for in-flight deliveries.
func (n *Notifier) Flush() { n.wg.Wait() }

func (n *Notifier) send(sev Severity, message string) {
	ev := Event{Severity: sev, Title: Title(n.app, sev), Body: message}
	if sev == SeverityError {
		slog.Warn("notify", "title", ev.Title, "body", ev.Body)
	} else {
		slog.Info("notify", "title", ev.Title, "body", ev.Body)
	}
	if n.deliver == nil {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()
		if err := n.deliver(ctx, ev); err != nil {
			slog.Debug("notification not delivered", "err", err)
		}
	}()
}

// Recorder is a Sink that keeps every event in memory.
type Recorder struct {
	App string

	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty Recorder titling events with app.
func NewRecorder(app string) *Recorder { return &Recorder{App: app} }

func (r *Recorder) Success(message string) { r.add(SeveritySuccess, message) }
func (r *Recorder) Error(message string)   { r.add(SeverityError, message) }

func (r *Recorder) add(sev Severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Severity: sev, Title: Title(r.App, sev), Body: message})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns the number of recorded events with severity sev.
func (r *Recorder) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Severity == sev {
			n++
		}
	}
	return n
}
