package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreateOrder handles POST /api/v1/orders — the public checkout submission.
// The stored total is recomputed from catalog prices; client-sent totals are
// never read.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	order, err := h.orders.Create(r.Context(), req.toInput())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ok":    true,
		"order": toOrderResponse(order),
	})
}

// GetOrder handles GET /api/v1/orders/{id}. Public: the confirmation page
// reads the order back after checkout.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"order": toOrderResponse(order),
	})
}

// ListOrders handles GET /api/v1/orders (admin), newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.orders.List(r.Context(), pageFromQuery(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	data := make([]orderResponse, len(result.Items))
	for i, o := range result.Items {
		data[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, listEnvelope{
		Data:    data,
		Page:    result.Page,
		Limit:   result.Limit,
		Total:   result.Total,
		HasNext: result.HasNext,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/{id} (admin): status transitions
// plus partial contact-field edits.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	patch, fields := req.toPatch()
	if fields != nil {
		writeValidationError(w, fields)
		return
	}

	updated, err := h.orders.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"order": toOrderResponse(updated),
	})
}

// DeleteOrder handles DELETE /api/v1/orders/{id} (admin).
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.orders.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"deletedId": id,
	})
}
