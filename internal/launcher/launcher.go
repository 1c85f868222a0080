// Package launcher is the boundary between user actions and the core
// components. Each action returns the component's error unchanged and also
// renders the outcome as at most one notification.
package launcher

import (
	"context"
	"errors"
	"fmt"

	"go.klb.dev/marklip-launcher/internal/clip"
	"go.klb.dev/marklip-launcher/internal/executor"
	"go.klb.dev/marklip-launcher/internal/notify"
)

// AppName titles every notification.
const AppName = "Marklip Launcher"

// Converter runs a conversion subcommand.
type Converter interface {
	Execute(ctx context.Context, subcommand string) error
}

// Registrar manages the login item.
type Registrar interface {
	IsRegistered() bool
	Register(ctx context.Context) error
	Unregister(ctx context.Context) error
}

// App wires the converter and registrar to a notification sink.
type App struct {
	conv Converter
	reg  Registrar
	sink notify.Sink
	tool string
}

// New returns an App. tool is the converter's command name, used in messages.
func New(conv Converter, reg Registrar, sink notify.Sink, tool string) *App {
	return &App{conv: conv, reg: reg, sink: sink, tool: tool}
}

// Convert runs the action's subcommand. A started tool reports its own
// result, so success produces no notification here.
func (a *App) Convert(ctx context.Context, subcommand string) error {
	err := a.conv.Execute(ctx, subcommand)
	switch {
	case err == nil:
	case errors.Is(err, executor.ErrToolNotFound):
		a.sink.Error(fmt.Sprintf("%s command not found. Please install via Homebrew.", a.tool))
	default:
		a.sink.Error(fmt.Sprintf("Failed to execute %s: %v", a.tool, err))
	}
	return err
}

// Register adds the login item.
func (a *App) Register(ctx context.Context) error {
	if err := a.reg.Register(ctx); err != nil {
		a.sink.Error("Registration failed: " + err.Error())
		return err
	}
	a.sink.Success("Successfully registered as startup item")
	return nil
}

// Unregister removes the login item.
func (a *App) Unregister(ctx context.Context) error {
	if err := a.reg.Unregister(ctx); err != nil {
		a.sink.Error("Unregistration failed: " + err.Error())
		return err
	}
	a.sink.Success("Successfully unregistered as startup item")
	return nil
}

// IsRegistered reports the live registration state.
func (a *App) IsRegistered() bool { return a.reg.IsRegistered() }

// Menu returns the conversion entries enabled for the clipboard snapshot.
func (a *App) Menu(s clip.Snapshot) []MenuEntry { return Menu(clip.Enable(s)) }
