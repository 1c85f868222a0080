package launchagent

import (
	"os"
	"path/filepath"
)

// DefaultDir returns ~/Library/LaunchAgents.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents"), nil
}

// SelfPath returns the absolute path of the running executable, falling back
// to argv[0] when the OS cannot report it.
func SelfPath() (string, error) {
	if p, err := os.Executable(); err == nil && p != "" {
		return p, nil
	}
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "", ErrExecutablePathNotFound
	}
	return filepath.Abs(os.Args[0])
}

// writeFileAtomic replaces path with data via a temp file in the same
// directory, so readers see either the old file or the complete new one.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
