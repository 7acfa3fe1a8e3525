package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/scm"
	"scm-event-dispatcher/internal/source"
	"scm-event-dispatcher/internal/source/repository"
	"scm-event-dispatcher/internal/source/repository/memory"
	"scm-event-dispatcher/pkg/debounce"
	pkgLog "scm-event-dispatcher/pkg/log"
)

const testSHA = "0123456789abcdef0123456789abcdef01234567"

var receivedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type sourceCall struct {
	src   model.SourceConfig
	ev    headevent.HeadEvent
	heads model.Heads
}

// recordingListener captures deliveries and can be told to fail or panic.
type recordingListener struct {
	mu         sync.Mutex
	sources    []sourceCall
	navigators []model.NavigatorConfig
	failFor    string
	panicFor   string
	delivered  chan struct{}
}

func newRecordingListener() *recordingListener {
	return &recordingListener{delivered: make(chan struct{}, 64)}
}

func (r *recordingListener) OnSourceEvent(ctx context.Context, src model.SourceConfig, ev headevent.HeadEvent, heads model.Heads) error {
	if src.ID == r.panicFor {
		panic("listener exploded")
	}
	r.mu.Lock()
	r.sources = append(r.sources, sourceCall{src: src, ev: ev, heads: heads})
	r.mu.Unlock()
	r.delivered <- struct{}{}
	if src.ID == r.failFor {
		return fmt.Errorf("listener failed for %s", src.ID)
	}
	return nil
}

func (r *recordingListener) OnNavigatorEvent(ctx context.Context, nav model.NavigatorConfig, ev headevent.HeadEvent) error {
	r.mu.Lock()
	r.navigators = append(r.navigators, nav)
	r.mu.Unlock()
	r.delivered <- struct{}{}
	return nil
}

func (r *recordingListener) sourceIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sources))
	for _, c := range r.sources {
		ids = append(ids, c.src.ID)
	}
	return ids
}

func (r *recordingListener) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.delivered:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d deliveries", i, n)
		}
	}
}

func newTestUseCase(t *testing.T, store repository.Repository, listener headevent.Listener) (*implUseCase, *debounce.ManualClock) {
	t.Helper()
	clock := debounce.NewManualClock(receivedAt)
	matcher := scm.NewMatcher(scm.NewHostResolver(map[string]string{"ghe.example.com": "ghe.example.com"}))
	uc := New(pkgLog.NewNop(), matcher, store, listener, clock, headevent.Config{Workers: 2}).(*implUseCase)
	uc.Start()
	t.Cleanup(func() { _ = uc.Stop(context.Background()) })
	return uc, clock
}

func newStore(t *testing.T, sources []source.SourceSpec, navigators []source.NavigatorSpec) repository.Store {
	t.Helper()
	store, err := memory.New(repository.Options{Now: func() time.Time { return receivedAt }}, sources, navigators)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return store
}

func repoJSON(htmlURL, owner, name string) string {
	return fmt.Sprintf(`{"name":%q,"html_url":%q,"owner":{"login":%q}}`, name, htmlURL, owner)
}

func createNotification(ref, refType string) model.Notification {
	return model.Notification{
		Source:     model.SourceGitHub,
		Kind:       model.KindCreate,
		Origin:     "192.0.2.10",
		DeliveryID: "d-create",
		ReceivedAt: receivedAt,
		Payload: []byte(fmt.Sprintf(`{"ref":%q,"ref_type":%q,"repository":%s}`,
			ref, refType, repoJSON("https://github.com/acme/widgets", "acme", "widgets"))),
	}
}

func deleteNotification(ref string) model.Notification {
	return model.Notification{
		Source:     model.SourceGitHub,
		Kind:       model.KindDelete,
		Origin:     "192.0.2.10",
		DeliveryID: "d-delete",
		ReceivedAt: receivedAt,
		Payload: []byte(fmt.Sprintf(`{"ref":%q,"ref_type":"branch","repository":%s}`,
			ref, repoJSON("https://github.com/acme/widgets", "acme", "widgets"))),
	}
}

func pushNotificationFor(ref, sha string, created, deleted bool, repo string) model.Notification {
	return model.Notification{
		Source:     model.SourceGitHub,
		Kind:       model.KindPush,
		Origin:     "192.0.2.10",
		DeliveryID: "d-push",
		ReceivedAt: receivedAt,
		Payload: []byte(fmt.Sprintf(`{"ref":%q,"after":%q,"created":%t,"deleted":%t,"repository":%s}`,
			ref, sha, created, deleted, repo)),
	}
}

func pushNotification(ref, sha string) model.Notification {
	return pushNotificationFor(ref, sha, false, false, repoJSON("https://github.com/acme/widgets", "acme", "widgets"))
}
