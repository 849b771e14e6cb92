package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FindDownloader returns the path to yt-dlp or youtube-dl.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindDownloader(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("could not find downloader at %q", customPath)
	}
	if p, err := exec.LookPath("yt-dlp"); err == nil {
		return p, nil
	}
	if p, err := exec.LookPath("youtube-dl"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find yt-dlp or youtube-dl in PATH: %s", InstallHint("yt-dlp"))
}

// FindFFmpeg returns the path to the ffmpeg binary.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("could not find ffmpeg at %q", customPath)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find ffmpeg in PATH: %s", InstallHint("ffmpeg"))
}

// FindFFprobe returns the path to the ffprobe binary. ffprobe ships with
// ffmpeg, so when ffmpegPath points at a concrete file the sibling ffprobe
// next to it wins over PATH.
func FindFFprobe(ffmpegPath string) (string, error) {
	if ffmpegPath != "" && filepath.Dir(ffmpegPath) != "." {
		sibling := filepath.Join(filepath.Dir(ffmpegPath), ffprobeName())
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	if p, err := exec.LookPath("ffprobe"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find ffprobe in PATH: %s", InstallHint("ffmpeg"))
}

func ffprobeName() string {
	if runtime.GOOS == "windows" {
		return "ffprobe.exe"
	}
	return "ffprobe"
}

// InstallHint returns a short per-platform install suggestion for a tool.
func InstallHint(tool string) string {
	if tool == "yt-dlp" {
		return "install it with 'pip install yt-dlp' or from https://github.com/yt-dlp/yt-dlp"
	}
	switch runtime.GOOS {
	case "darwin":
		return "install ffmpeg with Homebrew: 'brew install ffmpeg'"
	case "windows":
		return "install ffmpeg manually from https://ffmpeg.org/download.html and add it to your PATH"
	case "linux":
		return "install ffmpeg with your package manager, e.g. 'sudo apt-get install ffmpeg' (Debian/Ubuntu), 'sudo dnf install ffmpeg' (Fedora) or 'sudo pacman -S ffmpeg' (Arch)"
	default:
		return "install ffmpeg from https://ffmpeg.org/download.html"
	}
}
