package guide

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for appearance files whose extension is
// not .toml, .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("guide: unsupported appearance format")

// reloadDebounce coalesces the burst of events editors produce on save.
const reloadDebounce = 100 * time.Millisecond

// LoadAppearance reads an appearance file. Fields absent from the file keep
// their DefaultAppearance values; a missing file yields the defaults.
func LoadAppearance(path string) (Appearance, error) {
	a := DefaultAppearance()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".yaml", ".yml", ".json":
	default:
		return a, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return a, nil
		}
		return a, fmt.Errorf("guide: read appearance: %w", err)
	}

	if err := decodeAppearance(ext, data, &a); err != nil {
		return DefaultAppearance(), err
	}
	if err := a.Validate(); err != nil {
		return DefaultAppearance(), err
	}
	return a, nil
}

func decodeAppearance(ext string, data []byte, a *Appearance) error {
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), a); err != nil {
			return fmt.Errorf("guide: decode TOML appearance: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, a); err != nil {
			return fmt.Errorf("guide: decode JSON appearance: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, a); err != nil {
			return fmt.Errorf("guide: decode YAML appearance: %w", err)
		}
	}
	return nil
}

// AppearanceWatcher reloads an appearance file when it changes on disk and
// hands the result to a Guide.
type AppearanceWatcher struct {
	path    string
	guide   *Guide
	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	errChan chan error
	done    chan struct{}
}

// WatchAppearance watches path and applies every successful reload to g via
// Post, so the new appearance takes effect on g's next Update. Failed reloads
// leave the current appearance in place and are reported on Errors.
func WatchAppearance(g *Guide, path string) (*AppearanceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("guide: create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file rather than write
	// to it, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("guide: watch directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &AppearanceWatcher{
		path:    path,
		guide:   g,
		watcher: watcher,
		ctx:     ctx,
		cancel:  cancel,
		errChan: make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

func (w *AppearanceWatcher) watchLoop() {
	defer close(w.done)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *AppearanceWatcher) reload() {
	if w.ctx.Err() != nil {
		return
	}
	a, err := LoadAppearance(w.path)
	if err != nil {
		w.report(fmt.Errorf("guide: reload appearance: %w", err))
		return
	}
	w.guide.Post(func() {
		w.guide.logger.Info("appearance reloaded", "path", w.path)
		w.guide.SetAppearance(a)
	})
}

func (w *AppearanceWatcher) report(err error) {
	select {
	case w.errChan <- err:
	default:
	}
}

// Errors returns a channel for receiving reload and watch errors. Errors are
// dropped when nobody is receiving.
func (w *AppearanceWatcher) Errors() <-chan error {
	return w.errChan
}

// Close stops watching.
func (w *AppearanceWatcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	<-w.done
	return err
}
