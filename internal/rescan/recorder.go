package rescan

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
)

const (
	DefaultRecentSize = 200
	DefaultRecentTTL  = time.Hour
)

// Recorder keeps the most recent deliveries in a bounded, expiring cache.
type Recorder struct {
	cache *expirable.LRU[string, Delivery]
	now   func() time.Time
}

// NewRecorder creates a Recorder. Zero values select the defaults.
func NewRecorder(size int, ttl time.Duration, now func() time.Time) *Recorder {
	if size <= 0 {
		size = DefaultRecentSize
	}
	if ttl <= 0 {
		ttl = DefaultRecentTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		cache: expirable.NewLRU[string, Delivery](size, nil, ttl),
		now:   now,
	}
}

func (r *Recorder) OnSourceEvent(ctx context.Context, src model.SourceConfig, ev headevent.HeadEvent, heads model.Heads) error {
	d := sourceDelivery(src, ev, heads, r.now())
	r.cache.Add(recordKey(d), d)
	return nil
}

func (r *Recorder) OnNavigatorEvent(ctx context.Context, nav model.NavigatorConfig, ev headevent.HeadEvent) error {
	d := navigatorDelivery(nav, ev, r.now())
	r.cache.Add(recordKey(d), d)
	return nil
}

// Recent returns up to limit deliveries, newest first. A limit of zero or
// less returns everything held.
func (r *Recorder) Recent(limit int) []Delivery {
	out := r.cache.Values()
	slices.Reverse(out)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DeliveredAt.After(out[j].DeliveredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len returns the number of held deliveries.
func (r *Recorder) Len() int {
	return r.cache.Len()
}

func recordKey(d Delivery) string {
	return d.DeliveryID + "/" + string(d.Target) + "/" + d.TargetID
}
