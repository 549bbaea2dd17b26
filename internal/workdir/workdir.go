// Package workdir pins the process working directory to the directory that
// contains the checkrun executable, so invocation from anywhere in the tree
// behaves identically.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Resolve returns the directory containing the running executable, with
// symlinks resolved so a linked install still runs against its real tree.
func Resolve() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Dir(resolved), nil
}

// Enter verifies the directory is traversable and makes it the process
// working directory. The change is never reverted; the process exits right
// after the check sequence finishes.
func Enter(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("working directory %s does not exist", dir)
		}
		return fmt.Errorf("stat working directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %s is not a directory", dir)
	}
	if err := unix.Access(dir, unix.R_OK|unix.X_OK); err != nil {
		return fmt.Errorf("working directory %s: insufficient permissions: %w", dir, err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("change working directory: %w", err)
	}
	return nil
}
