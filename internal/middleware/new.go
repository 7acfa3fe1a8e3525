package middleware

import (
	"scm-event-dispatcher/pkg/log"
)

type Middleware struct {
	l          log.Logger
	adminToken string
}

func New(l log.Logger, adminToken string) Middleware {
	return Middleware{
		l:          l,
		adminToken: adminToken,
	}
}
