package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	authSvc  *services.AuthService
	sessions *sessions.CookieSessionStore
	render   *render.Render
	validate *validator.Validate
}

func NewAuthHandler(authSvc *services.AuthService, sessionStore *sessions.CookieSessionStore, rnd *render.Render) *AuthHandler {
	return &AuthHandler{
		authSvc:  authSvc,
		sessions: sessionStore,
		render:   rnd,
		validate: validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": helpers.FormatValidationErrors(verrs)})
			return
		}
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	user, err := h.authSvc.Register(r.Context(), in)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": "Successful",
		"user":        user,
	})
}

// Token accepts JSON or an OAuth2-style password form and returns a bearer
// token. A login session cookie is set as a side effect for web clients.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	token, user, err := h.authSvc.Login(r.Context(), username, password)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	// Bearer flow still works without the cookie.
	if err := h.sessions.SetUserID(w, r, user.ID); err != nil {
		log.Printf("auth: failed to set session cookie for %s: %v", user.ID, err)
	}

	h.render.JSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearSession(w, r); err != nil {
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear session"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"detail": "Logged out"})
}

func credentials(r *http.Request) (username, password string, ok bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", false
		}
		username, password = body.Username, body.Password
	} else {
		if err := r.ParseForm(); err != nil {
			return "", "", false
		}
		username = r.PostForm.Get("username")
		password = r.PostForm.Get("password")
	}
	return username, password, username != "" && password != ""
}
