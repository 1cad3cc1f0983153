package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/auth"
	"github.com/osse101/FairyGrove_Go/internal/logger"
)

// Authenticator resolves the Telegram user behind each request
type Authenticator struct {
	verifier   *auth.Verifier
	devAllowed bool
	now        func() time.Time
	onReject   func(*http.Request)
}

// NewAuthenticator creates the auth middleware. A nil verifier means no bot
// token is configured; only the dev identity can then be used.
func NewAuthenticator(verifier *auth.Verifier, devAllowed bool) *Authenticator {
	return &Authenticator{
		verifier:   verifier,
		devAllowed: devAllowed,
		now:        time.Now,
	}
}

// OnReject registers a callback invoked for every rejected request
func (a *Authenticator) OnReject(fn func(*http.Request)) *Authenticator {
	a.onReject = fn
	return a
}

// Require rejects requests without a valid identity and stores the player in the context
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolve(r)
		if err != nil {
			log := logger.FromContext(r.Context())
			log.Warn(LogMsgInitDataRejected, "error", err, "path", r.URL.Path)
			if a.onReject != nil {
				a.onReject(r)
			}
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPlayer(r.Context(), user)))
	})
}

func (a *Authenticator) resolve(r *http.Request) (auth.TelegramUser, error) {
	initData := r.Header.Get(auth.HeaderInitData)

	if a.devAllowed && (a.verifier == nil || initData == "") {
		logger.FromContext(r.Context()).Debug(LogMsgDevUserAuthenticated)
		return auth.DevUser(), nil
	}
	if a.verifier == nil {
		return auth.TelegramUser{}, auth.ErrMissingInitData
	}

	user, err := a.verifier.Verify(initData, a.now())
	if err != nil {
		return auth.TelegramUser{}, err
	}
	return *user, nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// PlayerKey is the context key for the authenticated Telegram user
	PlayerKey contextKey = "player"
)

// WithPlayer adds the authenticated user to the context
func WithPlayer(ctx context.Context, user auth.TelegramUser) context.Context {
	return context.WithValue(ctx, PlayerKey, user)
}

// PlayerFromContext retrieves the authenticated user
func PlayerFromContext(ctx context.Context) (auth.TelegramUser, bool) {
	user, ok := ctx.Value(PlayerKey).(auth.TelegramUser)
	return user, ok
}

// GetPlayerID retrieves the authenticated player's id or EmptyPlayerID
func GetPlayerID(ctx context.Context) string {
	if user, ok := PlayerFromContext(ctx); ok {
		return user.PlayerID()
	}
	return EmptyPlayerID
}

// GetLanguage retrieves the authenticated player's language code
func GetLanguage(ctx context.Context) string {
	if user, ok := PlayerFromContext(ctx); ok {
		return user.Language()
	}
	return auth.DefaultLanguage
}
