// Package dirs resolves the app's per-user directories: XDG base dirs on
// Linux, Library paths on macOS, and the os.User*Dir fallbacks elsewhere.
package dirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "yt2mp4"

// AppName returns the canonical application name for directory paths.
func AppName() string {
	return appName
}

func underHome(parts ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, parts...)...), nil
}

// ConfigDir returns the app's configuration directory:
// $XDG_CONFIG_HOME/yt2mp4 or ~/.config/yt2mp4 on Linux,
// ~/Library/Application Support/yt2mp4 on macOS, os.UserConfigDir elsewhere.
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support", appName)
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return underHome(".config", appName)
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, appName), nil
	}
}

// DataDir returns the app's data directory: $XDG_DATA_HOME/yt2mp4 or
// ~/.local/share/yt2mp4 on Linux, the Application Support dir on macOS,
// os.UserConfigDir elsewhere.
func DataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support", appName)
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return underHome(".local", "share", appName)
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, appName), nil
	}
}

// CacheDir returns the app's cache directory: $XDG_CACHE_HOME/yt2mp4 or
// ~/.cache/yt2mp4 on Linux, ~/Library/Caches/yt2mp4 on macOS,
// os.UserCacheDir elsewhere.
func CacheDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Caches", appName)
	case "linux":
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return underHome(".cache", appName)
	default:
		c, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(c, appName), nil
	}
}

// StateDir returns the app's state directory: $XDG_STATE_HOME/yt2mp4 or
// ~/.local/state/yt2mp4 on Linux, a state subdir of Application Support on
// macOS, %LocalAppData%/yt2mp4/state (else ConfigDir/state) elsewhere.
func StateDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support", appName, "state")
	case "linux":
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return underHome(".local", "state", appName)
	default:
		if la := os.Getenv("LOCALAPPDATA"); la != "" {
			return filepath.Join(la, appName, "state"), nil
		}
		cfg, err := ConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, "state"), nil
	}
}

// Ensure creates the directory if it doesn't exist.
func Ensure(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// EnsureAll creates the config, data, cache, and state dirs, skipping any
// that cannot be resolved on this system.
func EnsureAll() error {
	for _, resolve := range []func() (string, error){ConfigDir, DataDir, CacheDir, StateDir} {
		p, err := resolve()
		if err != nil {
			continue
		}
		if err := Ensure(p); err != nil {
			return err
		}
	}
	return nil
}
