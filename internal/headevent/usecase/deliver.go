package usecase

import (
	"context"

	"scm-event-dispatcher/internal/headevent"
	pkgLog "scm-event-dispatcher/pkg/log"
)

// Deliver reads the registry at delivery time and fans ev out to every
// navigator and source it matches. Listener failures are logged and never
// stop the fan-out.
func (uc *implUseCase) Deliver(ctx context.Context, ev headevent.HeadEvent) {
	ctx = context.WithValue(ctx, pkgLog.DeliveryIDKey, ev.DeliveryID())
	ctx = context.WithValue(ctx, pkgLog.OriginKey, ev.Origin())

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "headevent.usecase.Deliver: recovered from panic delivering %s: %v", ev.Description(), r)
		}
	}()

	uc.deliverToNavigators(ctx, ev)
	uc.deliverToSources(ctx, ev)
}

func (uc *implUseCase) deliverToNavigators(ctx context.Context, ev headevent.HeadEvent) {
	navs, err := uc.sources.ListNavigators(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "headevent.usecase.Deliver: failed to list navigators: %v", err)
		return
	}

	for _, nav := range navs {
		if !ev.IsMatchNavigator(nav) {
			continue
		}
		uc.guard(ctx, "navigator "+nav.ID, func() {
			if err := uc.listener.OnNavigatorEvent(ctx, nav, ev); err != nil {
				uc.l.Warnf(ctx, "headevent.usecase.Deliver: navigator %s: %v", nav.ID, err)
			}
		})
	}
}

func (uc *implUseCase) deliverToSources(ctx context.Context, ev headevent.HeadEvent) {
	srcs, err := uc.sources.ListSources(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "headevent.usecase.Deliver: failed to list sources: %v", err)
		return
	}

	for _, src := range srcs {
		if !ev.IsMatchSource(src) {
			continue
		}
		uc.guard(ctx, "source "+src.ID, func() {
			heads := ev.Heads(src)
			if len(heads) == 0 {
				uc.l.Debugf(ctx, "%s resolves to no heads for source %s", ev.DescriptionForSource(src), src.ID)
				return
			}
			if err := uc.listener.OnSourceEvent(ctx, src, ev, heads); err != nil {
				uc.l.Warnf(ctx, "headevent.usecase.Deliver: source %s: %v", src.ID, err)
			}
		})
	}
}

// guard keeps one misbehaving configuration from starving the rest.
func (uc *implUseCase) guard(ctx context.Context, target string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "headevent.usecase.Deliver: recovered from panic for %s: %v", target, r)
		}
	}()
	fn()
}
