package youtube

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/recapkit/recap/internal/logging"
)

// Client runs yt-dlp and decodes its JSON output.
type Client struct {
	binary string
	logger *logging.Logger
}

// NewClient resolves the yt-dlp binary and returns a client around it.
func NewClient(logger *logging.Logger) (*Client, error) {
	binary, err := Ensure()
	if err != nil {
		return nil, fmt.Errorf("failed to locate yt-dlp: %w", err)
	}
	return &Client{binary: binary, logger: logger}, nil
}

// Metadata fetches a single video's metadata without downloading media.
func (c *Client) Metadata(ctx context.Context, url string) (*Video, error) {
	out, err := c.run(ctx, "-J", url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata: %w", err)
	}
	return parseVideoJSON(out)
}

// Channel lists the newest videos of a channel or playlist without
// resolving each entry.
func (c *Client) Channel(ctx context.Context, url string, max int) ([]Entry, error) {
	args := []string{"-J", "--flat-playlist"}
	if max > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(max))
	}
	args = append(args, url)

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel: %w", err)
	}
	return parsePlaylistJSON(out)
}

// Captions downloads the caption track for one video, taking manual
// subtitles when present and auto-generated ones otherwise. Returns the
// raw caption file contents. Returns ErrNoCaptions when the video has no
// track in the requested language.
func (c *Client) Captions(ctx context.Context, url, lang string) (string, error) {
	dir, err := os.MkdirTemp("", "recap-captions-*")
	if err != nil {
		return "", fmt.Errorf("failed to create caption dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", lang,
		"--sub-format", "vtt/srt/best",
		"-o", filepath.Join(dir, "captions.%(ext)s"),
		url,
	}
	if _, err := c.run(ctx, args...); err != nil {
		return "", fmt.Errorf("failed to download captions: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "captions.*"))
	if err != nil {
		return "", fmt.Errorf("failed to scan caption dir: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrNoCaptions
	}
	sort.Strings(matches)

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", fmt.Errorf("failed to read caption file: %w", err)
	}
	return string(data), nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debugw("running yt-dlp", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		if line := errorLine(stderr.String()); line != "" {
			return nil, fmt.Errorf("yt-dlp: %s: %w", line, err)
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	return stdout.Bytes(), nil
}

// errorLine pulls the most useful line out of yt-dlp stderr output.
func errorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return truncate(line, 200)
		}
	}
	return truncate(strings.TrimSpace(lines[len(lines)-1]), 200)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
