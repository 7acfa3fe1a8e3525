package rescan

import (
	"context"
	"strings"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
	pkgLog "scm-event-dispatcher/pkg/log"
)

type auditListener struct {
	l pkgLog.Logger
}

// NewAuditListener logs every delivery at info level.
func NewAuditListener(l pkgLog.Logger) headevent.Listener {
	return &auditListener{l: l}
}

func (a *auditListener) OnSourceEvent(ctx context.Context, src model.SourceConfig, ev headevent.HeadEvent, heads model.Heads) error {
	names := make([]string, 0, len(heads))
	for _, rec := range headRecords(heads) {
		if rec.SHA != "" {
			names = append(names, string(rec.Kind)+":"+rec.Name+"@"+rec.SHA)
			continue
		}
		names = append(names, string(rec.Kind)+":"+rec.Name)
	}
	a.l.Infof(ctx, "%s %s for source %s [%s]", ev.Type(), ev.DescriptionForSource(src), src.ID, strings.Join(names, ", "))
	return nil
}

func (a *auditListener) OnNavigatorEvent(ctx context.Context, nav model.NavigatorConfig, ev headevent.HeadEvent) error {
	a.l.Infof(ctx, "%s %s for navigator %s", ev.Type(), ev.DescriptionForNavigator(nav), nav.ID)
	return nil
}
