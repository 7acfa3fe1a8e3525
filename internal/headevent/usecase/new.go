package usecase

import (
	"context"
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/scm"
	"scm-event-dispatcher/internal/source/repository"
	"scm-event-dispatcher/pkg/debounce"
	pkgLog "scm-event-dispatcher/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	matcher   scm.Matcher
	sources   repository.Repository
	listener  headevent.Listener
	clock     debounce.Clock
	delay     time.Duration
	scheduler *debounce.Scheduler[headevent.HeadEvent]
}

// New creates a new headevent UseCase. Call Start before dispatching.
func New(
	l pkgLog.Logger,
	matcher scm.Matcher,
	sources repository.Repository,
	listener headevent.Listener,
	clock debounce.Clock,
	cfg headevent.Config,
) headevent.UseCase {
	if clock == nil {
		clock = debounce.RealClock()
	}
	if cfg.Delay <= 0 {
		cfg.Delay = headevent.DefaultDelay
	}
	uc := &implUseCase{
		l:        l,
		matcher:  matcher,
		sources:  sources,
		listener: listener,
		clock:    clock,
		delay:    cfg.Delay,
	}
	uc.scheduler = debounce.New[headevent.HeadEvent](clock, uc.Deliver, l, debounce.Config{
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
	})
	return uc
}

func (uc *implUseCase) Start() {
	uc.scheduler.Start()
}

func (uc *implUseCase) Stop(ctx context.Context) error {
	return uc.scheduler.Stop(ctx)
}
