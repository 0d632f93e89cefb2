package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// ParseJSON decodes JSON from the request body into the given
// destination, bounding the body size to prevent abuse.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// 1MB is generous for this API's payloads
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// QueryInt reads an integer query parameter, falling back to def when
// absent or unparseable.
func QueryInt(r *http.Request, key string, def int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// PathInt reads an integer path parameter (Go 1.22 pattern wildcard).
func PathInt(r *http.Request, name string) (int, error) {
	value := r.PathValue(name)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, value)
	}
	return n, nil
}
