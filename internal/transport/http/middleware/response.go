package middleware

import (
	"encoding/json"
	"net/http"
)

// writeCallError writes a callable-protocol error body with the correct Content-Type.
func writeCallError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"status": code, "message": msg},
	})
}
