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

type CategoryHandler struct {
	catalogSvc *services.CatalogService
	render     *render.Render
	validate   *validator.Validate
}

func NewCategoryHandler(catalogSvc *services.CatalogService, rnd *render.Render) *CategoryHandler {
	return &CategoryHandler{
		catalogSvc: catalogSvc,
		render:     rnd,
		validate:   validator.New(),
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	var in services.CreateCategoryInput
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

	category, err := h.catalogSvc.CreateCategory(r.Context(), actor, in)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": "Successful",
		"category":    category,
	})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogSvc.ListCategories(r.Context())
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) AssignParent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	var in struct {
		ParentID *string `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	category, err := h.catalogSvc.AssignParent(r.Context(), actor, mux.Vars(r)["id"], in.ParentID)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, category)
}
