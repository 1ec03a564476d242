package processor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/mauv0809/league-hub/internal/pubsub"
)

const deliveryTimeout = 30 * time.Second

// dispatch hands e to Pub/Sub, or delivers it directly when Pub/Sub is not configured
// or publishing failed outright. An unconfirmed publish is not delivered again, so an
// event reaches each channel at most once. dispatch never blocks the caller and never
// reports an error to it.
func (p *Processor) dispatch(ctx context.Context, e notifier.Event) {
	e.DryRun = notifier.DryRunFromContext(ctx)
	ctx = context.WithoutCancel(ctx)

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		defer cancel()

		if p.pubsub != nil && !e.DryRun {
			err := p.pubsub.SendMessage(ctx, pubsub.TopicNotifications, e)
			if err == nil {
				return
			}
			p.metrics.IncNotifFailed("pubsub")
			if pubsub.PublishUnconfirmed(err) {
				log.Error("Notification publish unconfirmed, not delivering directly", "error", err, "type", e.Type)
				return
			}
			log.Warn("Failed to publish notification, delivering directly", "error", err, "type", e.Type)
		}
		if err := p.Deliver(ctx, e); err != nil {
			log.Error("Failed to deliver notification", "error", err, "type", e.Type)
		}
	}()
}

// Deliver sends e through the configured notifier. It is also the entry point for
// events received from a Pub/Sub push subscription.
func (p *Processor) Deliver(ctx context.Context, e notifier.Event) error {
	log.FromContext(ctx).Debug("Delivering notification", "type", e.Type, "dryRun", e.DryRun)
	return notifier.Deliver(ctx, p.notifier, e)
}

// Wait blocks until detached deliveries have finished.
func (p *Processor) Wait() {
	p.inflight.Wait()
}
