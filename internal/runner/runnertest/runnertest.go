// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"sync"

	"go.klb.dev/marklip-launcher/internal/runner"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []string
}

// Response is the canned outcome for a program.
type Response struct {
	Result runner.Result
	Err    error
}

// Fake returns canned responses keyed by program name and records every call.
// Programs without a response exit 0 with no output.
type Fake struct {
	mu        sync.Mutex
	responses map[string][]Response
	calls     []Call
	// Hook, when set, runs before a response is returned. It sees the call
	// and may touch the filesystem to mimic side effects.
	Hook func(Call)
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string][]Response)}
}

// Respond queues a response for name. Queued responses are consumed in order;
// the last one is sticky and repeats for all further calls.
func (f *Fake) Respond(name string, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = append(f.responses[name], resp)
	return f
}

// Set discards any queued responses for name and installs resp.
func (f *Fake) Set(name string, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = []Response{resp}
	return f
}

// Exit queues a response with the given exit code and stdout.
func (f *Fake) Exit(name string, code int, stdout string) *Fake {
	return f.Respond(name, Response{Result: runner.Result{ExitCode: code, Stdout: []byte(stdout)}})
}

// LaunchError queues a launch failure for name.
func (f *Fake) LaunchError(name string, err error) *Fake {
	return f.Respond(name, Response{Err: err})
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) (runner.Result, error) {
	f.mu.Lock()
	call := Call{Name: name, Args: append([]string(nil), args...)}
	f.calls = append(f.calls, call)
	var resp Response
	if q := f.responses[name]; len(q) > 0 {
		resp = q[0]
		if len(q) > 1 {
			f.responses[name] = q[1:]
		}
	}
	hook := f.Hook
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	return resp.Result, resp.Err
}

// Calls returns a copy of all recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls for one program.
func (f *Fake) CallsTo(name string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// String renders the call log, handy in assertion messages.
func (f *Fake) String() string {
	return fmt.Sprint(f.Calls())
}
