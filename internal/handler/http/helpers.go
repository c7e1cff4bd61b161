package http

import (
	"net/http"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/handler/http/response"
)

// actorFrom writes a 401 and returns false when no actor is on the context.
func actorFrom(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return user.Actor{}, false
	}
	return actor, true
}

// confirmed reports whether a destructive request carries confirm=true.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
