package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	assert.Equal(t, "Marklip Launcher", Title("Marklip Launcher", SeveritySuccess))
	assert.Equal(t, "Marklip Launcher Error", Title("Marklip Launcher", SeverityError))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "success", SeveritySuccess.String())
	assert.Equal(t, "error", SeverityError.String())
}

func TestRecorder_KeepsOrderAndSeverity(t *testing.T) {
	r := NewRecorder("App")
	r.Success("one")
	r.Error("two")
	r.Success("three")

	assert.Equal(t, []Event{
		{Severity: SeveritySuccess, Title: "App", Body: "one"},
		{Severity: SeverityError, Title: "App Error", Body: "two"},
		{Severity: SeveritySuccess, Title: "App", Body: "three"},
	}, r.Events())
	assert.Equal(t, 2, r.Count(SeveritySuccess))
	assert.Equal(t, 1, r.Count(SeverityError))
}

func TestNotifier_LogOnlyFlushReturnsImmediately(t *testing.T) {
	n := NewLog("App")
	n.Success("ok")
	n.Error("bad")

	done := make(chan struct{})
	go func() {
		n.Flush()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Flush blocked with no deliverer")
	}
}

func TestNotifier_DeliversInBackgroundAndFlushWaits(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var got []Event
	n := &Notifier{app: "App", deliver: func(_ context.Context, ev Event) error {
		<-release
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev)
		return errors.New("helper missing")
	}}

	n.Error("bad")
	n.Success("ok")
	close(release)
	n.Flush()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []Event{
		{Severity: SeverityError, Title: "App Error", Body: "bad"},
		{Severity: SeveritySuccess, Title: "App", Body: "ok"},
	}, got)
}

var _ Sink = (*Notifier)(nil)
var _ Sink = (*Recorder)(nil)
