package usecase

import (
	"fmt"

	"github.com/google/go-github/v73/github"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
)

// decodePayload turns a raw webhook body into one of the payload variants.
func decodePayload(kind model.NotificationKind, raw []byte) (headevent.Payload, error) {
	switch kind {
	case model.KindCreate, model.KindDelete, model.KindPush:
	default:
		return nil, fmt.Errorf("%w: %q", headevent.ErrUnsupportedKind, kind)
	}

	parsed, err := github.ParseWebHook(string(kind), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", headevent.ErrDecodePayload, err)
	}

	switch ev := parsed.(type) {
	case *github.CreateEvent:
		if ev.Repo == nil {
			return nil, headevent.ErrMissingRepository
		}
		return headevent.CreatePayload{
			Ref:        ev.GetRef(),
			RefType:    ev.GetRefType(),
			Repository: repositoryOf(ev.Repo),
		}, nil

	case *github.DeleteEvent:
		if ev.Repo == nil {
			return nil, headevent.ErrMissingRepository
		}
		return headevent.DeletePayload{
			Ref:        ev.GetRef(),
			Repository: repositoryOf(ev.Repo),
		}, nil

	case *github.PushEvent:
		if ev.Repo == nil {
			return nil, headevent.ErrMissingRepository
		}
		sha := ev.GetAfter()
		if sha == "" {
			sha = ev.GetHeadCommit().GetID()
		}
		return headevent.PushPayload{
			Ref:     ev.GetRef(),
			HeadSHA: sha,
			Created: ev.GetCreated(),
			Deleted: ev.GetDeleted(),
			Repository: headevent.Repository{
				HTMLURL: ev.Repo.GetHTMLURL(),
				Owner:   ownerLogin(ev.Repo.GetOwner()),
				Name:    ev.Repo.GetName(),
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: unexpected %T", headevent.ErrDecodePayload, parsed)
}

func repositoryOf(r *github.Repository) headevent.Repository {
	return headevent.Repository{
		HTMLURL: r.GetHTMLURL(),
		Owner:   ownerLogin(r.GetOwner()),
		Name:    r.GetName(),
	}
}

// ownerLogin prefers the login. Push payloads sometimes carry only the name.
func ownerLogin(u *github.User) string {
	if login := u.GetLogin(); login != "" {
		return login
	}
	return u.GetName()
}
