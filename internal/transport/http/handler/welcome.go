package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-otp-mailer/internal/application/welcome"
)

// WelcomeHandler serves the sendWelcomeEmail callable.
type WelcomeHandler struct {
	svc welcome.Service
}

func NewWelcomeHandler(svc welcome.Service) *WelcomeHandler { return &WelcomeHandler{svc: svc} }

type welcomePayload struct {
	Email       json.RawMessage `json:"email"`
	DisplayName json.RawMessage `json:"displayName"`
}

func (h *WelcomeHandler) Send(w http.ResponseWriter, r *http.Request) {
	var p welcomePayload
	if err := decodeCall(r, &p); err != nil {
		writeInvalidArgument(w, err.Error())
		return
	}
	var req welcome.Request
	req.Email, _ = stringArg(p.Email)
	req.DisplayName, _ = stringArg(p.DisplayName)

	err := h.svc.SendWelcomeEmail(r.Context(), req)
	if err != nil {
		slog.WarnContext(r.Context(), "sendWelcomeEmail failed", "email", req.Email, "caller", callerID(r), "err", err)
	}
	writeResult(w, err)
}
