package rescan

import (
	"sort"
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
)

// TargetKind tells whether a delivery went to a source or a navigator.
type TargetKind string

const (
	TargetSource    TargetKind = "source"
	TargetNavigator TargetKind = "navigator"
)

// HeadRecord is one resolved head in serializable form.
type HeadRecord struct {
	Name      string         `json:"name"`
	Kind      model.HeadKind `json:"kind"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	SHA       string         `json:"sha,omitempty"`
}

// Delivery is a re-scan request as published and recorded.
type Delivery struct {
	DeliveryID  string                 `json:"delivery_id"`
	Kind        model.NotificationKind `json:"kind"`
	Type        model.ChangeType       `json:"type"`
	Origin      string                 `json:"origin,omitempty"`
	Repository  string                 `json:"repository"`
	Target      TargetKind             `json:"target"`
	TargetID    string                 `json:"target_id"`
	Description string                 `json:"description"`
	Heads       []HeadRecord           `json:"heads,omitempty"`
	EventTime   time.Time              `json:"event_time"`
	DeliveredAt time.Time              `json:"delivered_at"`
}

func sourceDelivery(src model.SourceConfig, ev headevent.HeadEvent, heads model.Heads, now time.Time) Delivery {
	d := baseDelivery(ev, now)
	d.Target = TargetSource
	d.TargetID = src.ID
	d.Description = ev.DescriptionForSource(src)
	d.Heads = headRecords(heads)
	return d
}

func navigatorDelivery(nav model.NavigatorConfig, ev headevent.HeadEvent, now time.Time) Delivery {
	d := baseDelivery(ev, now)
	d.Target = TargetNavigator
	d.TargetID = nav.ID
	d.Description = ev.DescriptionForNavigator(nav)
	return d
}

func baseDelivery(ev headevent.HeadEvent, now time.Time) Delivery {
	return Delivery{
		DeliveryID:  ev.DeliveryID(),
		Kind:        ev.Kind(),
		Type:        ev.Type(),
		Origin:      ev.Origin(),
		Repository:  ev.Identity().FullName(),
		EventTime:   ev.Timestamp(),
		DeliveredAt: now,
	}
}

// headRecords flattens heads, sorted by name for stable output.
func headRecords(heads model.Heads) []HeadRecord {
	out := make([]HeadRecord, 0, len(heads))
	for head, rev := range heads {
		rec := HeadRecord{Name: head.HeadName(), Kind: head.HeadKind()}
		if tag, ok := head.(model.Tag); ok {
			ts := tag.Timestamp
			rec.Timestamp = &ts
		}
		if rev != nil {
			rec.SHA = rev.Hash()
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
