package usecase

import (
	"context"
	"fmt"

	"scm-event-dispatcher/internal/model"
	pkgLog "scm-event-dispatcher/pkg/log"
)

// Dispatch decodes n and schedules it. Undecodable notifications are logged
// and dropped, they are never scheduled.
func (uc *implUseCase) Dispatch(ctx context.Context, n model.Notification) error {
	ctx = context.WithValue(ctx, pkgLog.DeliveryIDKey, n.DeliveryID)
	ctx = context.WithValue(ctx, pkgLog.OriginKey, n.Origin)

	ev, err := uc.newHeadEvent(n)
	if err != nil {
		uc.l.Warnf(ctx, "Could not parse %s %s event from %s with payload: %s: %v", n.Source, n.Kind, n.Origin, n.Payload, err)
		return err
	}

	if err := uc.scheduler.Schedule(ev, uc.delay); err != nil {
		uc.l.Errorf(ctx, "headevent.usecase.Dispatch: failed to schedule %s: %v", ev.Description(), err)
		return fmt.Errorf("failed to schedule event: %w", err)
	}

	uc.l.Infof(ctx, "Scheduled %s %s (%s) for delivery in %s", n.Source, ev.Description(), ev.Type(), uc.delay)
	return nil
}
