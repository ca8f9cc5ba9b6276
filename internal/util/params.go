package util

import (
	"net/http"
	"strconv"
)

// ParseLimit reads ?limit= with a sane default and hard cap.
func ParseLimit(r *http.Request, def int) int {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	if n > 500 {
		return 500
	}
	return n
}
