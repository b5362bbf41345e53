// Package paths resolves the directories and files ordino reads.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDir returns the user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// GlobalConfigPath returns the path of the user-wide config file.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ordino", "config.toml"), nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// ResolveWithDefault returns override if non-empty, otherwise the result
// of defaultFn.
func ResolveWithDefault(override string, defaultFn func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return defaultFn()
}
