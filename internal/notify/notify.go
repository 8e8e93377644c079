package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers a digest summary to one destination.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, title, text string) error
}

// Fanout sends a notification to every registered adapter, best-effort. A
// failing adapter is logged and skipped; it never blocks the others.
type Fanout struct {
	notifiers []Notifier
	logger    *zap.Logger
}

// NewFanout creates a fanout over the given adapters.
func NewFanout(logger *zap.Logger, notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers, logger: logger}
}

// Register adds an adapter.
func (f *Fanout) Register(n Notifier) {
	f.notifiers = append(f.notifiers, n)
}

// Notify delivers to all adapters sequentially.
func (f *Fanout) Notify(ctx context.Context, title, text string) {
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, title, text); err != nil {
			f.logger.Warn("notification failed",
				zap.String("adapter", n.Name()), zap.Error(err))
			continue
		}
		f.logger.Debug("notification delivered", zap.String("adapter", n.Name()))
	}
}
