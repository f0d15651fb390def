package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

// ParsePage reads the optional offset (>= 0) and limit (> 0) query parameters.
// Missing parameters are returned as zero, which callers treat as "no paging".
// On a bad value a 400 response is written and ok is false.
func ParsePage(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (offset, limit int32, ok bool) {
	if offset, ok = parseInt32(w, r, logger, "offset", 0); !ok {
		return 0, 0, false
	}
	if limit, ok = parseInt32(w, r, logger, "limit", 1); !ok {
		return 0, 0, false
	}
	return offset, limit, true
}

func parseInt32(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string, min int64) (int32, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < min {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, raw))
		return 0, false
	}
	return int32(n), true
}

// ParseOptionalDecimal parses an optional non-negative decimal query parameter.
// Returns nil when the parameter is absent.
func ParseOptionalDecimal(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (*decimal.Decimal, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s value: %s", key, raw))
		return nil, false
	}
	return &d, true
}
