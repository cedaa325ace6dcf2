package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a callback whenever files under the watched directories
// change. Events are debounced: pipelines tend to write many artifacts in a
// burst and one re-render per burst is enough.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

type Option func(*Watcher)

// WithDebounce overrides the event settle window (useful for tests).
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func New(opts ...Option) *Watcher {
	w := &Watcher{
		debounce: 500 * time.Millisecond,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch blocks until ctx is done, invoking fn after each settled burst of
// filesystem events under dirs. Errors from fn are logged, not fatal: a
// half-written artifact set should not stop the watch loop.
func (w *Watcher) Watch(ctx context.Context, dirs []string, fn func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return &domain.OpError{
			Op:   "watch.new",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	defer fw.Close()

	for _, d := range dirs {
		if err := fw.Add(d); err != nil {
			return &domain.OpError{
				Op:   "watch.add",
				Kind: domain.KindNotFound,
				Path: d,
				Err:  err,
			}
		}
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("watch.event", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "err", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if err := fn(ctx); err != nil {
				w.logger.Warn("watch.callback_failed", "err", err)
			}
		}
	}
}
