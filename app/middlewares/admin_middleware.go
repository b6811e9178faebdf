package middlewares

import (
	"log"
	"net/http"
)

// AdminAuthMiddleware must run after AuthMiddleware.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromRequest(r)
		if !ok {
			unauthorized(w)
			return
		}

		if !actor.IsAdmin {
			log.Printf("AdminAuthMiddleware: user %s attempted an admin route", actor.ID)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"you must be admin user for this"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
