// Package rescan holds the listeners that act on delivered head events:
// audit logging, AMQP publishing and a recent-delivery recorder.
package rescan

import (
	"context"
	"errors"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
)

type multi []headevent.Listener

// Multi notifies every listener in order. All listeners run even when one
// fails; the errors are joined.
func Multi(listeners ...headevent.Listener) headevent.Listener {
	var out multi
	for _, l := range listeners {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

func (m multi) OnSourceEvent(ctx context.Context, src model.SourceConfig, ev headevent.HeadEvent, heads model.Heads) error {
	var errs []error
	for _, l := range m {
		if err := l.OnSourceEvent(ctx, src, ev, heads); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) OnNavigatorEvent(ctx context.Context, nav model.NavigatorConfig, ev headevent.HeadEvent) error {
	var errs []error
	for _, l := range m {
		if err := l.OnNavigatorEvent(ctx, nav, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
