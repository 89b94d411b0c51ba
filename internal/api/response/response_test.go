package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"stock", app_err.NewStockError("p1", 2), http.StatusConflict},
		{"funds", fmt.Errorf("pay: %w", app_err.ErrInsufficientFunds), http.StatusConflict},
		{"already resolved", app_err.ErrAlreadyResolved, http.StatusConflict},
		{"invalid action", app_err.ErrInvalidOrderAction, http.StatusConflict},
		{"empty cart", app_err.ErrEmptyCart, http.StatusBadRequest},
		{"invalid amount", app_err.ErrInvalidAmount, http.StatusBadRequest},
		{"not owner", app_err.ErrNotOwner, http.StatusForbidden},
		{"order not found", app_err.ErrOrderNotFound, http.StatusNotFound},
		{"wallet not found", app_err.ErrWalletNotFound, http.StatusNotFound},
		{"settlement", app_err.NewSettlementError("o1", errors.New("db down")), http.StatusServiceUnavailable},
		{"canceled", context.Canceled, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, StatusOf(tc.err))
		})
	}
}

func TestErrorCarriesProductID(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, fmt.Errorf("place order: %w", app_err.NewStockError("p-42", 3)))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Contains(t, body.Message, "p-42")
	assert.Equal(t, "p-42", body.Data["product_id"])
}

func TestErrorHidesInfraDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}
