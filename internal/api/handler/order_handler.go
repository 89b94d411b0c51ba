package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/api/dto"
	"github.com/RoyceAzure/lab/fulfillment/internal/api/response"
	"github.com/RoyceAzure/lab/fulfillment/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	assembler   service.IOrderAssembler
	query       service.IOrderQueryService
	fulfillment service.IFulfillmentService
}

func NewOrderHandler(assembler service.IOrderAssembler, query service.IOrderQueryService, fulfillment service.IFulfillmentService) *OrderHandler {
	if assembler == nil || query == nil || fulfillment == nil {
		panic("order handler dependencies cannot be nil")
	}
	return &OrderHandler{
		assembler:   assembler,
		query:       query,
		fulfillment: fulfillment,
	}
}

// POST /customers/{customerID}/orders
// 以目前購物車建立訂單
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.assembler.PlaceOrder(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.CreatedJSON(w, order)
}

// GET /customers/{customerID}/orders
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	orders, err := h.query.ListOrdersByCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, orders)
}

// GET /orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.query.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, order)
}

// POST /orders/{orderID}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelOrderDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.fulfillment.CancelOrder(r.Context(), chi.URLParam(r, "orderID"), req.CustomerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, order)
}

// POST /orders/{orderID}/deliver
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	order, err := h.fulfillment.MarkDelivered(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, order)
}
