// Package launchagent registers the launcher as a per-user login item by
// writing a launchd descriptor and loading it with launchctl.
//
// The descriptor file is the only record of registration: it exists at
// Path() exactly when the launcher is registered. Every failing step undoes
// what the earlier steps did so that launchd and the filesystem agree.
package launchagent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.klb.dev/marklip-launcher/internal/runner"
)

var (
	ErrExecutablePathNotFound = errors.New("could not determine executable path")
	ErrDirectoryCreateFailed  = errors.New("could not create launch agents directory")
	ErrDescriptorWriteFailed  = errors.New("could not write launch agent descriptor")
	ErrLoadFailed             = errors.New("failed to load launch agent with launchctl")
	ErrUnloadFailed           = errors.New("failed to unload launch agent with launchctl")
	ErrNotRegistered          = errors.New("launch agent is not registered")
	ErrDescriptorDeleteFailed = errors.New("launch agent unloaded but descriptor could not be removed")
)

// DescriptorExt is the file extension launchd expects.
const DescriptorExt = ".plist"

// Config locates the descriptor and the session-manager utility.
type Config struct {
	Label     string // reverse-DNS job label, also the descriptor file name
	Dir       string // per-user agents directory
	Launchctl string // path to launchctl
	// Executable returns the program path to register. Defaults to SelfPath.
	Executable func() (string, error)
}

// Manager owns the descriptor file for one label.
type Manager struct {
	cfg   Config
	r     runner.Runner
	write func(path string, data []byte, perm os.FileMode) error
}

// New returns a Manager that runs launchctl through r.
func New(r runner.Runner, cfg Config) *Manager {
	if cfg.Executable == nil {
		cfg.Executable = SelfPath
	}
	return &Manager{cfg: cfg, r: r, write: writeFileAtomic}
}

// Label returns the job label.
func (m *Manager) Label() string { return m.cfg.Label }

// Path returns where the descriptor lives.
func (m *Manager) Path() string {
	return filepath.Join(m.cfg.Dir, m.cfg.Label+DescriptorExt)
}

// IsRegistered reports whether the descriptor file exists. It always checks
// the filesystem since the file may be removed out of band.
func (m *Manager) IsRegistered() bool {
	_, err := os.Stat(m.Path())
	return err == nil
}

// Current reads and decodes the descriptor on disk.
func (m *Manager) Current() (Descriptor, error) {
	data, err := os.ReadFile(m.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Descriptor{}, ErrNotRegistered
		}
		return Descriptor{}, err
	}
	return Parse(data)
}

// Register writes the descriptor for the running executable and loads it.
//
// Registering again with an unchanged executable is a successful no-op. If
// the executable moved, the descriptor is replaced first and the old job is
// unloaded only once the new file is in place, so a failed write leaves both
// the old file and the old job untouched. When launchctl load fails the
// descriptor is removed again.
func (m *Manager) Register(ctx context.Context) error {
	exe, err := m.cfg.Executable()
	if err != nil || exe == "" {
		if err == nil {
			return ErrExecutablePathNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutablePathNotFound, err)
	}

	if err := os.MkdirAll(m.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrDirectoryCreateFailed, err)
	}

	content, err := Render(NewDescriptor(m.cfg.Label, exe))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDescriptorWriteFailed, err)
	}

	path := m.Path()
	stale := false
	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, content) {
			slog.Info("launch agent already registered", "path", path)
			return nil
		}
		stale = true
	}

	if err := m.write(path, content, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrDescriptorWriteFailed, err)
	}

	// The label is unchanged, so unloading by path still finds the old job.
	// launchd must forget it before the new one loads under the same label.
	if stale {
		if err := m.launchctl(ctx, "unload", path); err != nil {
			slog.Debug("unload of stale job failed", "path", path, "err", err)
		}
	}

	if err := m.launchctl(ctx, "load", path); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			slog.Warn("could not remove descriptor after failed load", "path", path, "err", rmErr)
		}
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	slog.Info("launch agent registered", "label", m.cfg.Label, "program", exe, "path", path)
	return nil
}

// Unregister unloads the job and deletes the descriptor.
//
// It fails with ErrNotRegistered, touching nothing, when no descriptor
// exists. If unload fails the descriptor is kept since launchd may still
// have the job loaded.
func (m *Manager) Unregister(ctx context.Context) error {
	if !m.IsRegistered() {
		return ErrNotRegistered
	}

	path := m.Path()
	if err := m.launchctl(ctx, "unload", path); err != nil {
		return fmt.Errorf("%w: %w", ErrUnloadFailed, err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrDescriptorDeleteFailed, err)
	}

	slog.Info("launch agent unregistered", "label", m.cfg.Label, "path", path)
	return nil
}

// launchctl runs `launchctl <verb> <path>`; it returns an error when the
// utility cannot be launched or exits non-zero.
func (m *Manager) launchctl(ctx context.Context, verb, path string) error {
	res, err := m.r.Run(ctx, m.cfg.Launchctl, verb, path)
	if err != nil {
		return err
	}
	if !res.Success() {
		if msg := res.StderrText(); msg != "" {
			return fmt.Errorf("launchctl %s exited with status %d: %s", verb, res.ExitCode, msg)
		}
		return fmt.Errorf("launchctl %s exited with status %d", verb, res.ExitCode)
	}
	return nil
}
