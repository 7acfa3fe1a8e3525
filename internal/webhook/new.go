package webhook

import (
	"time"

	"github.com/google/uuid"

	"scm-event-dispatcher/internal/headevent"
	pkgLog "scm-event-dispatcher/pkg/log"
)

type Handler struct {
	headEventUC headevent.UseCase
	deliveries  DeliveryLister
	security    *SecurityValidator
	l           pkgLog.Logger
	now         func() time.Time
	newID       func() string
}

func NewHandler(
	headEventUC headevent.UseCase,
	deliveries DeliveryLister,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		headEventUC: headEventUC,
		deliveries:  deliveries,
		security:    NewSecurityValidator(securityConfig),
		l:           l,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}
