package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-otp-mailer/internal/application/otp"
	"github.com/go-otp-mailer/internal/transport/http/middleware"
)

// OTPHandler serves the issueOtp and verifyOtp callables.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler { return &OTPHandler{svc: svc} }

// Arguments are kept raw so a value of the wrong JSON type becomes an
// operation result rather than a rejected call.
type issuePayload struct {
	Email json.RawMessage `json:"email"`
}

// verifyPayload accepts the code under either "code" or the legacy "otp" key.
type verifyPayload struct {
	Email json.RawMessage `json:"email"`
	Code  json.RawMessage `json:"code"`
	OTP   json.RawMessage `json:"otp"`
}

func (h *OTPHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var p issuePayload
	if err := decodeCall(r, &p); err != nil {
		writeInvalidArgument(w, err.Error())
		return
	}
	email, _ := stringArg(p.Email)
	err := h.svc.IssueOTP(r.Context(), otp.IssueRequest{Email: email})
	if err != nil {
		slog.WarnContext(r.Context(), "issueOtp failed", "email", email, "caller", callerID(r), "err", err)
	}
	writeResult(w, err)
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var p verifyPayload
	if err := decodeCall(r, &p); err != nil {
		writeInvalidArgument(w, err.Error())
		return
	}
	req := otp.VerifyRequest{}
	req.Email, _ = stringArg(p.Email)

	raw := p.Code
	if len(raw) == 0 || string(raw) == "null" {
		raw = p.OTP
	}
	code, ok := stringArg(raw)
	if ok {
		req.Code = code
	} else {
		req.Code = string(raw)
		req.CodeNotString = true
	}

	err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		slog.WarnContext(r.Context(), "verifyOtp failed", "email", req.Email, "caller", callerID(r), "err", err)
	}
	writeResult(w, err)
}

func callerID(r *http.Request) string {
	if c, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return c.UserID
	}
	return ""
}
