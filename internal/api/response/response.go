package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
)

// Response 統一回應格式, 成功與失敗共用
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func SuccessJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

func CreatedJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Code: http.StatusCreated, Message: "success", Data: data})
}

func ErrorJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Code: status, Message: message, Data: data})
}

// StatusOf 錯誤分類轉 http status
// 使用者錯誤回 4xx, 可重試的基礎設施錯誤回 503
func StatusOf(err error) int {
	switch {
	case errors.Is(err, app_err.ErrInsufficientStock),
		errors.Is(err, app_err.ErrInsufficientFunds),
		errors.Is(err, app_err.ErrAlreadyResolved),
		errors.Is(err, app_err.ErrInvalidTransition),
		errors.Is(err, app_err.ErrInvalidOrderAction):
		return http.StatusConflict
	case errors.Is(err, app_err.ErrEmptyCart),
		errors.Is(err, app_err.ErrInvalidAmount),
		errors.Is(err, app_err.ErrInvalidQuantity),
		errors.Is(err, app_err.ErrCartItemQuantity):
		return http.StatusBadRequest
	case errors.Is(err, app_err.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, app_err.ErrOrderNotFound),
		errors.Is(err, app_err.ErrOrderItemNotFound),
		errors.Is(err, app_err.ErrProductNotFound),
		errors.Is(err, app_err.ErrWalletNotFound):
		return http.StatusNotFound
	case app_err.IsRetryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error 依錯誤種類寫回應
// 基礎設施錯誤不回傳細節
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if !app_err.IsUserError(err) {
		ErrorJSON(w, status, http.StatusText(status), nil)
		return
	}

	var stockErr *app_err.StockError
	if errors.As(err, &stockErr) {
		ErrorJSON(w, status, err.Error(), map[string]interface{}{
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
		})
		return
	}
	ErrorJSON(w, status, err.Error(), nil)
}
