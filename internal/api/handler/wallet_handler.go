package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/api/dto"
	"github.com/RoyceAzure/lab/fulfillment/internal/api/response"
	"github.com/RoyceAzure/lab/fulfillment/internal/service"
	"github.com/go-chi/chi/v5"
)

type WalletHandler struct {
	ledger service.ILedgerService
}

func NewWalletHandler(ledger service.ILedgerService) *WalletHandler {
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	return &WalletHandler{ledger: ledger}
}

// POST /customers/{customerID}/wallet
// 重複開立回傳既有錢包
func (h *WalletHandler) OpenWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.ledger.OpenWallet(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, wallet)
}

// GET /customers/{customerID}/wallet
func (h *WalletHandler) GetByCustomer(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.ledger.GetWalletByCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, wallet)
}

// GET /wallets/{walletID}
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.ledger.GetWallet(r.Context(), chi.URLParam(r, "walletID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, wallet)
}

// GET /wallets/{walletID}/transactions
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.ledger.ListTransactions(r.Context(), chi.URLParam(r, "walletID"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, txs)
}

// POST /wallets/{walletID}/funds
func (h *WalletHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	var req dto.AddFundsDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tx, err := h.ledger.AddFunds(r.Context(), chi.URLParam(r, "walletID"), req.Amount, req.Description)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, tx)
}

// POST /wallets/{walletID}/payments
func (h *WalletHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PayDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tx, err := h.ledger.Pay(r.Context(), chi.URLParam(r, "walletID"), req.Amount, req.Description)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessJSON(w, tx)
}
