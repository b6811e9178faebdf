package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/middlewares"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/unrolled/render"
)

type PermissionHandler struct {
	userSvc *services.UserService
	render  *render.Render
}

func NewPermissionHandler(userSvc *services.UserService, rnd *render.Render) *PermissionHandler {
	return &PermissionHandler{userSvc: userSvc, render: rnd}
}

// ToggleSupplier grants or revokes the supplier capability.
func (h *PermissionHandler) ToggleSupplier(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	user, err := h.userSvc.ToggleSupplier(r.Context(), actor, userID)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	detail := "User is no longer supplier"
	if user.IsSupplier {
		detail = "User is now supplier"
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"detail": detail})
}

// ToggleActive soft-deletes or reactivates a non-admin account.
func (h *PermissionHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	user, err := h.userSvc.ToggleActive(r.Context(), actor, userID)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	detail := "User is deleted"
	if user.IsActive {
		detail = "User is activated"
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"detail": detail})
}
