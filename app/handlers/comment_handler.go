package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/middlewares"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CommentHandler struct {
	reviewSvc *services.ReviewService
	render    *render.Render
	validate  *validator.Validate
}

func NewCommentHandler(reviewSvc *services.ReviewService, rnd *render.Render) *CommentHandler {
	return &CommentHandler{
		reviewSvc: reviewSvc,
		render:    rnd,
		validate:  validator.New(),
	}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	var in services.CreateCommentInput
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

	comment, err := h.reviewSvc.CreateComment(r.Context(), actor, mux.Vars(r)["product_id"], in)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	threads, err := h.reviewSvc.ListComments(r.Context(), mux.Vars(r)["product_id"])
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, threads)
}

func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	var in struct {
		Comment string `json:"comment" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Comment == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "comment text is required"})
		return
	}

	comment, err := h.reviewSvc.EditComment(r.Context(), actor, mux.Vars(r)["id"], in.Comment)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	if err := h.reviewSvc.DeleteComment(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]string{"detail": "Comment has been deleted"})
}
