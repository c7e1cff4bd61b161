package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/handler/http/response"
)

// RequireAdmin must run after AuthRequired.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireCapability(user.CapabilityAdminister)(next)
}

// RequireCapability rejects actors whose role lacks capability. Services
// repeat the check; this only fails fast at the route.
func RequireCapability(capability user.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := user.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !actor.Can(capability) {
				response.HandleError(w, user.ErrPermissionDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
