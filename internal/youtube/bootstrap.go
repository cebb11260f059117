package youtube

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const (
	ytdlpReleaseVersion = "2025.06.09"
	ytdlpReleaseBaseURL = "https://github.com/yt-dlp/yt-dlp/releases/download"
)

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath string
)

// Ensure resolves the yt-dlp binary, downloading a pinned release into
// the user cache dir when none is installed. The result is cached for
// the process lifetime. RECAP_YTDLP_PATH overrides all lookup.
func Ensure() (string, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = ensure()
	})
	return ensurePath, ensureErr
}

func ensure() (string, error) {
	if path := os.Getenv("RECAP_YTDLP_PATH"); path != "" {
		if fileExists(path) {
			return path, nil
		}
		return "", fmt.Errorf("RECAP_YTDLP_PATH points to missing file: %s", path)
	}

	if found, err := exec.LookPath("yt-dlp"); err == nil {
		return found, nil
	}

	assetName, err := assetForPlatform(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return "", err
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil || cacheDir == "" {
		cacheDir = os.TempDir()
	}
	installDir := filepath.Join(
		cacheDir,
		"recap",
		"yt-dlp",
		ytdlpReleaseVersion,
		runtime.GOOS,
		runtime.GOARCH,
	)
	target := filepath.Join(installDir, "yt-dlp"+executableSuffix())

	if fileExists(target) {
		return target, nil
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return "", fmt.Errorf("create yt-dlp cache dir: %w", err)
	}

	if err := download(assetName, target); err != nil {
		return "", err
	}

	if !fileExists(target) {
		return "", errors.New("yt-dlp binary missing after download")
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(target, 0o755); err != nil {
			return "", fmt.Errorf("chmod yt-dlp: %w", err)
		}
	}

	return target, nil
}

func assetForPlatform(goos, goarch string) (string, error) {
	switch {
	case goos == "linux" && (goarch == "amd64" || goarch == "arm64"):
		return "yt-dlp", nil
	case goos == "darwin":
		return "yt-dlp_macos", nil
	case goos == "windows" && goarch == "amd64":
		return "yt-dlp.exe", nil
	default:
		return "", fmt.Errorf("unsupported platform for bundled yt-dlp: %s/%s", goos, goarch)
	}
}

func download(assetName, target string) error {
	url := fmt.Sprintf("%s/%s/%s", ytdlpReleaseBaseURL, ytdlpReleaseVersion, assetName)
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("download yt-dlp: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download yt-dlp: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "yt-dlp-*")
	if err != nil {
		return fmt.Errorf("create temp binary: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write yt-dlp binary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close yt-dlp binary: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("install yt-dlp binary: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
