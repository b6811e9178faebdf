package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
)

// AuthMiddleware resolves the caller from a Bearer token, or from the login
// session cookie when no token is sent, and puts the Actor on the request
// context. Requests with neither are rejected.
func AuthMiddleware(authSvc *services.AuthService, userRepo repositories.UserRepositoryImpl, store *sessions.CookieSessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				token := strings.TrimPrefix(header, "Bearer ")
				claims, err := authSvc.ValidateToken(token)
				if err != nil {
					unauthorized(w)
					return
				}
				serveWithActor(next, w, r, claims.Actor())
				return
			}

			if userID := store.GetUserID(r); userID != "" {
				user, err := userRepo.FindByID(r.Context(), userID)
				if err != nil || user == nil || !user.IsActive {
					log.Printf("AuthMiddleware: stale session for user %s", userID)
					unauthorized(w)
					return
				}
				serveWithActor(next, w, r, services.Actor{
					ID:         user.ID,
					Username:   user.Username,
					IsAdmin:    user.IsAdmin,
					IsSupplier: user.IsSupplier,
					IsCustomer: user.IsCustomer,
				})
				return
			}

			unauthorized(w)
		})
	}
}

func serveWithActor(next http.Handler, w http.ResponseWriter, r *http.Request, actor services.Actor) {
	ctx := context.WithValue(r.Context(), helpers.ContextKeyClaims, actor)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"could not validate user"}`))
}

// ActorFromRequest returns the Actor the auth middleware stored, if any.
func ActorFromRequest(r *http.Request) (services.Actor, bool) {
	actor, ok := r.Context().Value(helpers.ContextKeyClaims).(services.Actor)
	return actor, ok
}
