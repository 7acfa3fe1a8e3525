package rescan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
)

// Publisher sends a message body under a routing key. pkg/rabbitmq's
// Connection satisfies it.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// PublisherConfig controls routing of published deliveries.
type PublisherConfig struct {
	// RoutingKey is a template. "{target}", "{kind}" and "{type}" are
	// replaced per delivery. Empty means "scm.{target}.{kind}".
	RoutingKey string
}

type publisherListener struct {
	pub Publisher
	cfg PublisherConfig
	now func() time.Time
}

// NewPublisherListener publishes every delivery as JSON.
func NewPublisherListener(pub Publisher, cfg PublisherConfig) headevent.Listener {
	if cfg.RoutingKey == "" {
		cfg.RoutingKey = "scm.{target}.{kind}"
	}
	return &publisherListener{pub: pub, cfg: cfg, now: time.Now}
}

func (p *publisherListener) OnSourceEvent(ctx context.Context, src model.SourceConfig, ev headevent.HeadEvent, heads model.Heads) error {
	return p.publish(ctx, sourceDelivery(src, ev, heads, p.now()))
}

func (p *publisherListener) OnNavigatorEvent(ctx context.Context, nav model.NavigatorConfig, ev headevent.HeadEvent) error {
	return p.publish(ctx, navigatorDelivery(nav, ev, p.now()))
}

func (p *publisherListener) publish(ctx context.Context, d Delivery) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}
	if err := p.pub.Publish(ctx, p.routingKey(d), body); err != nil {
		return fmt.Errorf("failed to publish %s delivery for %s: %w", d.Target, d.TargetID, err)
	}
	return nil
}

func (p *publisherListener) routingKey(d Delivery) string {
	return strings.NewReplacer(
		"{target}", string(d.Target),
		"{kind}", string(d.Kind),
		"{type}", strings.ToLower(string(d.Type)),
	).Replace(p.cfg.RoutingKey)
}
