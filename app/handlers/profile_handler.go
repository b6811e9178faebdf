package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/middlewares"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/unrolled/render"
)

type ProfileHandler struct {
	userSvc *services.UserService
	render  *render.Render
}

func NewProfileHandler(userSvc *services.UserService, rnd *render.Render) *ProfileHandler {
	return &ProfileHandler{userSvc: userSvc, render: rnd}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	profile, err := h.userSvc.GetProfile(r.Context(), actor)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	var in struct {
		Password    string `json:"password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Password == "" || in.NewPassword == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "password and new_password are required"})
		return
	}

	if err := h.userSvc.ChangePassword(r.Context(), actor, in.Password, in.NewPassword); err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]string{"transaction": "Successful"})
}
