package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recapkit/recap/internal/logging"
)

// Handler processes one newly written transcript file.
type Handler func(ctx context.Context, path string) error

// Watcher reacts to transcripts appearing in a directory, running the
// handler with bounded concurrency.
type Watcher struct {
	dir           string
	handler       Handler
	logger        *logging.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settleDelay   time.Duration
	wg            sync.WaitGroup
}

func New(dir string, handler Handler, logger *logging.Logger, maxConcurrent int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &Watcher{
		dir:           dir,
		handler:       handler,
		logger:        logger,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settleDelay:   500 * time.Millisecond,
	}, nil
}

// Start blocks handling events until ctx is canceled, then waits for
// in-flight handlers before returning.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Infow("watching for new transcripts",
		"dir", w.dir,
		"maxConcurrent", w.maxConcurrent,
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Infow("waiting for running summarizations to finish")
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isTranscript(event.Name) {
				continue
			}

			w.logger.Infow("new transcript detected", "file", event.Name)

			// give the writer a moment to finish the file
			time.Sleep(w.settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, path); err != nil {
						w.logger.Warnw("failed to process transcript",
							"file", path,
							"error", err,
						)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warnw("watcher error", "error", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// isTranscript reports whether a path names a transcript file rather
// than a summary or a hidden artifact.
func isTranscript(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	if !strings.HasSuffix(name, ".txt") {
		return false
	}
	if strings.HasSuffix(name, "_summary.txt") {
		return false
	}
	return !strings.HasPrefix(name, ".")
}
