package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the upload directory and invokes handle with freshly
// staged sources whenever files settle there. Events are debounced so a
// multi-file drop triggers one staging pass instead of one per file.
// Watch blocks until ctx is cancelled.
func (f *Fetcher) Watch(ctx context.Context, handle func([]Source) error) error {
	uploadDir := f.UploadDir()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create uploads dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(uploadDir); err != nil {
		return fmt.Errorf("failed to watch uploads dir: %w", err)
	}

	f.logger.Info("watching for uploads", "dir", uploadDir)

	var debounce *time.Timer
	fired := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			// Settle time for slow copies into the directory.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(2*time.Second, func() {
				select {
				case fired <- struct{}{}:
				default:
				}
			})

		case <-fired:
			sources, err := f.StageUploads()
			if err != nil {
				f.logger.Error("failed to stage uploads", "error", err)
				continue
			}
			if len(sources) == 0 {
				continue
			}
			if err := handle(sources); err != nil {
				f.logger.Error("failed to handle staged uploads", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Error("watcher error", "error", err)
		}
	}
}
