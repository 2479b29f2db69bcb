// SPDX-License-Identifier: MIT
// Package: consentflow/config
//
// watcher.go - reload the configuration file when it changes on disk.
//
// The parent directory is watched rather than the file so that editors
// which save by rename keep triggering reloads. Bursts of events are
// collapsed: a reload runs once no event arrived for the debounce window.

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/metrics"
)

// DefaultReloadDebounce collapses editor save bursts.
const DefaultReloadDebounce = 150 * time.Millisecond

// ErrWatcherRunning is returned by Start on a running Watcher.
var ErrWatcherRunning = errors.New("config: watcher already running")

// ReloadFunc receives every reload attempt. On error cfg is the zero value
// and the previous configuration should stay in effect.
type ReloadFunc func(cfg Config, err error)

// Watcher reloads one configuration file.
type Watcher struct {
	path     string
	onReload ReloadFunc
	logger   *zap.Logger
	metrics  *metrics.Registry
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatchLogger sets the logger. Panics on nil.
func WithWatchLogger(l *zap.Logger) WatcherOption {
	if l == nil {
		panic("config: WithWatchLogger(nil)")
	}
	return func(w *Watcher) { w.logger = l }
}

// WithWatchMetrics counts reloads in r.
func WithWatchMetrics(r *metrics.Registry) WatcherOption {
	return func(w *Watcher) { w.metrics = r }
}

// WithReloadDebounce sets the quiet period before a reload. Panics on d ≤ 0.
func WithReloadDebounce(d time.Duration) WatcherOption {
	if d <= 0 {
		panic("config: WithReloadDebounce must be positive")
	}
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher prepares a watcher for path; nothing runs until Start.
func NewWatcher(path string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}
	if onReload == nil {
		return nil, errors.New("config: nil reload callback")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("NewWatcher: %w", err)
	}
	w := &Watcher{
		path:     abs,
		onReload: onReload,
		logger:   zap.NewNop(),
		debounce: DefaultReloadDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start begins watching. The loop ends on Stop or when ctx is done; Stop
// must still be called to release the watcher.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrWatcherRunning
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("Start: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("Start: watch %s: %w", filepath.Dir(w.path), err)
	}

	w.watcher = fw
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.run(ctx, fw, w.stopCh, w.doneCh)

	w.logger.Info("watching configuration", zap.String("path", w.path))
	return nil
}

// Stop ends the loop and waits for it. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	w.mu.Unlock()

	<-done
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer fw.Close()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("configuration watch error", zap.Error(err))
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	w.metrics.RecordConfigReload(err)
	if err != nil {
		w.logger.Warn("configuration reload failed", zap.String("path", w.path), zap.Error(err))
		w.onReload(Config{}, err)
		return
	}
	w.logger.Info("configuration reloaded",
		zap.String("path", w.path),
		zap.String("consent", cfg.Consent),
		zap.String("density", cfg.Density),
	)
	w.onReload(cfg, nil)
}
