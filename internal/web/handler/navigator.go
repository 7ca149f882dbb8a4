package handler

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/apiclient"
)

// LoginNavigator receives the API client's forced navigation. Pages are
// server rendered, so the redirect itself is issued by the error handler;
// the navigator only remembers that the session was ended so the login page
// can say so.
type LoginNavigator struct {
	expired atomic.Bool
	log     zerolog.Logger
}

func NewLoginNavigator(log zerolog.Logger) *LoginNavigator {
	return &LoginNavigator{log: log}
}

func (n *LoginNavigator) Navigate(path string) {
	if path == apiclient.LoginPath {
		n.expired.Store(true)
	}
	n.log.Info().Str("path", path).Msg("navigation requested")
}

// TakeExpired reports, once, whether a session was ended since the last call.
func (n *LoginNavigator) TakeExpired() bool {
	return n.expired.Swap(false)
}
