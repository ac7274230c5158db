package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryBool reads an optional boolean query parameter, returning nil
// when the key is absent.
func ParseQueryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be boolean").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}
