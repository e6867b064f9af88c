// Package notify delivers short human-readable notices about ledger
// activity. Delivery is best effort: callers never retry and never fail an
// operation because a notice could not be sent.
package notify

import (
	"context"

	"github.com/dmitrijs2005/rollcall/internal/logging"
)

// Notifier sends message to recipient.
type Notifier interface {
	Notify(ctx context.Context, recipient, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, recipient, message string) error

func (f NotifierFunc) Notify(ctx context.Context, recipient, message string) error {
	return f(ctx, recipient, message)
}

// LogNotifier simulates an email gateway by writing each notice to the log.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{log: l.With("module", "notify")}
}

func (n *LogNotifier) Notify(ctx context.Context, recipient, message string) error {
	n.log.Info(ctx, "simulated email sent", "to", recipient, "message", message)
	return nil
}
