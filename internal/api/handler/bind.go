package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/api/dto"
	"github.com/RoyceAzure/lab/fulfillment/internal/api/response"
)

// decodeAndValidate 解析 body 並驗證, 失敗時已寫回 400
func decodeAndValidate(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	if err := dto.Validate(out); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, "validation failed", dto.ValidationErrorsToMap(err))
		return false
	}
	return true
}
