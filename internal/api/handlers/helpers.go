package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/utils"
)

// decodeJSON decodes the request body into dst, writing a BAD_REQUEST
// response on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// paginate slices a full result set for the requested page
func paginate[T any](items []T, params utils.PaginationParams) []T {
	if params.Offset >= len(items) {
		return []T{}
	}
	end := params.Offset + params.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[params.Offset:end]
}
