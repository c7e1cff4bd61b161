package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/certtracker/internal/domain/auth"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/handler/http/response"
	"github.com/cmlabs-hris/certtracker/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only verified access tokens. The token identifies the
// user; role and scope are read from the stored account on every request so
// role changes apply to sessions already issued. Demo tokens carry the whole
// actor. Refresh and SSE tokens are rejected.
func AuthRequired(users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			actor, err := jwt.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !actor.Demo {
				stored, err := users.GetByID(r.Context(), actor.ID)
				if err != nil {
					if !errors.Is(err, user.ErrUserNotFound) {
						slog.Error("AuthRequired user lookup error", "error", err)
						response.HandleError(w, err)
						return
					}
					response.HandleError(w, auth.ErrInvalidToken)
					return
				}
				actor = stored.Actor()
			}

			next.ServeHTTP(w, r.WithContext(user.WithActor(r.Context(), actor)))
		})
	}
}
