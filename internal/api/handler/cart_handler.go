package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/api/dto"
	"github.com/RoyceAzure/lab/fulfillment/internal/api/response"
	"github.com/RoyceAzure/lab/fulfillment/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// GET /customers/{customerID}/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.GetCart(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, cart)
}

// POST /customers/{customerID}/cart/items
// 數量累加到既有品項
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), chi.URLParam(r, "customerID"), req.ProductID, req.Quantity)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, cart)
}

// POST /customers/{customerID}/cart/items/{productID}/decrease
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	var req dto.DecreaseCartItemDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cart, err := h.cartService.DecreaseItem(r.Context(), chi.URLParam(r, "customerID"), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, cart)
}

// DELETE /customers/{customerID}/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.RemoveItem(r.Context(), chi.URLParam(r, "customerID"), chi.URLParam(r, "productID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, cart)
}

// DELETE /customers/{customerID}/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if err := h.cartService.ClearCart(r.Context(), customerID); err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, map[string]string{"customer_id": customerID})
}
