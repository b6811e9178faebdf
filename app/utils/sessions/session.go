package sessions

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "marketplace-session"
	userIDSessionKey  = "userID"
)

// CookieSessionStore keeps a browser login session alongside the bearer
// token flow. API clients never need it; web clients get it for free on
// login.
type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &CookieSessionStore{store: store}
}

func (s *CookieSessionStore) GetUserID(r *http.Request) string {
	session, err := s.store.Get(r, sessionCookieName)
	if err != nil {
		return ""
	}
	userID, ok := session.Values[userIDSessionKey].(string)
	if !ok {
		return ""
	}
	return userID
}

func (s *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := s.store.Get(r, sessionCookieName)
	if err != nil {
		session, _ = s.store.New(r, sessionCookieName)
	}
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (s *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, sessionCookieName)
	if err != nil {
		return err
	}
	session.Options.MaxAge = -1
	delete(session.Values, userIDSessionKey)
	return session.Save(r, w)
}
