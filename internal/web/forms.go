package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Form helpers. Optional fields map blank inputs to nil so PATCH bodies only
// carry what the user actually filled in.

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func optFormString(r *http.Request, key string) *string {
	v := formString(r, key)
	if v == "" {
		return nil
	}
	return &v
}

func formFloat(r *http.Request, key string) (float64, error) {
	raw := formString(r, key)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

func optFormFloat(r *http.Request, key string) (*float64, error) {
	raw := formString(r, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

// optFormBool reads a tri-state select: "true"/"false" or blank for "leave as
// is".
func optFormBool(r *http.Request, key string) *bool {
	switch formString(r, key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
