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

type ProductHandler struct {
	catalogSvc *services.CatalogService
	render     *render.Render
	validate   *validator.Validate
}

func NewProductHandler(catalogSvc *services.CatalogService, rnd *render.Render) *ProductHandler {
	return &ProductHandler{
		catalogSvc: catalogSvc,
		render:     rnd,
		validate:   validator.New(),
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	var in services.CreateProductInput
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

	product, err := h.catalogSvc.CreateProduct(r.Context(), actor, in)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": "Successful",
		"product":     product,
	})
}

// ByCategory lists every sellable product in the category subtree.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.ProductsInSubtree(r.Context(), mux.Vars(r)["category_slug"])
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogSvc.ProductDetail(r.Context(), mux.Vars(r)["product_slug"])
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		return
	}

	if err := h.catalogSvc.DeleteProduct(r.Context(), actor, productID); err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]string{"detail": "Product has been deleted"})
}
