// Package httpx holds the JSON envelope and small HTTP helpers. Every
// response, success or failure, uses the same {code, message, data} shape.
package httpx

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps payloads in the response envelope.
func WriteData(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Envelope{Code: code, Message: message, Data: data})
}

func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Envelope{Code: code, Message: message})
}
