package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-otp-mailer/internal/domain"
)

const maxBodyBytes = 1 << 20

// callableRequest is the request wrapper of a callable function.
type callableRequest struct {
	Data json.RawMessage `json:"data"`
}

// ResultEnvelope wraps every answered call, including failed operations.
type ResultEnvelope struct {
	Result domain.Result `json:"result"`
}

// ErrorEnvelope is returned when the call itself is malformed or rejected.
type ErrorEnvelope struct {
	Error CallError `json:"error"`
}

type CallError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var errBadCall = errors.New("Request body must be a JSON object with a data field")

// decodeCall unwraps {"data": {...}} into dst.
func decodeCall(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errBadCall
	}
	var req callableRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errBadCall
	}
	data := bytes.TrimSpace(req.Data)
	if len(data) == 0 || data[0] != '{' {
		return errBadCall
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errBadCall
	}
	return nil
}

// stringArg reads an optional string argument. ok is false when the value is
// present but is not a JSON string; s is then empty.
func stringArg(raw json.RawMessage) (s string, ok bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", true
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeResult(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusOK, ResultEnvelope{Result: domain.ResultFrom(err)})
}

func writeInvalidArgument(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: CallError{Status: "INVALID_ARGUMENT", Message: msg}})
}
