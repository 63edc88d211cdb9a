package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/xeroscommerce/pricing-service/pkg/errors"
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

// ParseOptionalQueryID reads an optional positive identifier from the query
// string. A missing or blank parameter yields nil.
func ParseOptionalQueryID(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a positive identifier").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParsePathID reads a positive identifier from a URL path segment.
func ParsePathID(raw, name string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive identifier").WithDetails(map[string]any{"field": name})
	}
	return value, nil
}
