package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/shoply-api/internal/pkg/paging"
)

// ListProducts handles GET /api/v1/products?page=&limit=&q=.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	result, err := h.catalog.List(r.Context(), q, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	data := make([]productResponse, len(result.Items))
	for i, p := range result.Items {
		data[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, listEnvelope{
		Data:    data,
		Page:    result.Page,
		Limit:   result.Limit,
		Total:   result.Total,
		HasNext: result.HasNext,
	})
}

// GetProductBySlug handles GET /api/v1/products/{slug}, tolerating
// numeric-suffix padding differences in the slug.
func (h *Handler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.ResolveSlug(r.Context(), slug)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"product": toStorefrontProduct(product),
	})
}

// CreateProduct handles POST /api/v1/products (admin).
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	product, fields := req.validate()
	if fields != nil {
		writeValidationError(w, fields)
		return
	}

	created, err := h.catalog.Create(r.Context(), product)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ok":      true,
		"product": toProductResponse(created),
	})
}

// UpdateProduct handles PATCH /api/v1/products/{id} (admin). The body is a
// partial record merged into the stored product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	patch, fields := req.validate()
	if fields != nil {
		writeValidationError(w, fields)
		return
	}

	updated, err := h.catalog.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"product": toProductResponse(updated),
	})
}

// DeleteProduct handles DELETE /api/v1/products/{id} (admin). Unconditional:
// no soft-delete, and orders referencing the product keep their snapshots.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"deletedId": id,
	})
}

// pageFromQuery reads page/limit query params, treating anything unparsable
// as "not supplied" and clamping to the shared bounds.
func pageFromQuery(r *http.Request) paging.Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return paging.Clamp(page, limit)
}
