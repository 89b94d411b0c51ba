package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/api/response"
	"github.com/RoyceAzure/lab/fulfillment/internal/service"
	"github.com/go-chi/chi/v5"
)

type SellerHandler struct {
	query       service.IOrderQueryService
	fulfillment service.IFulfillmentService
}

func NewSellerHandler(query service.IOrderQueryService, fulfillment service.IFulfillmentService) *SellerHandler {
	if query == nil || fulfillment == nil {
		panic("seller handler dependencies cannot be nil")
	}
	return &SellerHandler{query: query, fulfillment: fulfillment}
}

// GET /sellers/{sellerID}/orders
// 訂單只帶該賣家的明細
func (h *SellerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.query.ListOrdersBySeller(r.Context(), chi.URLParam(r, "sellerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, orders)
}

// POST /sellers/{sellerID}/order-items/{itemID}/approve
func (h *SellerHandler) ApproveItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.fulfillment.ApproveItem(r.Context(), chi.URLParam(r, "itemID"), chi.URLParam(r, "sellerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, item)
}

// POST /sellers/{sellerID}/order-items/{itemID}/reject
func (h *SellerHandler) RejectItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.fulfillment.RejectItem(r.Context(), chi.URLParam(r, "itemID"), chi.URLParam(r, "sellerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, item)
}
