package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-otp-mailer/internal/application/otp"
	"github.com/go-otp-mailer/internal/application/welcome"
	"github.com/go-otp-mailer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- mocks ---

type mockOTPSvc struct{ mock.Mock }

func (m *mockOTPSvc) IssueOTP(ctx context.Context, req otp.IssueRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockOTPSvc) VerifyOTP(ctx context.Context, req otp.VerifyRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockWelcomeSvc struct{ mock.Mock }

func (m *mockWelcomeSvc) SendWelcomeEmail(ctx context.Context, req welcome.Request) error {
	return m.Called(ctx, req).Error(0)
}

// --- helpers ---

func newTestRouter(otpSvc otp.Service, welcomeSvc welcome.Service) http.Handler {
	r := chi.NewRouter()
	otpH := NewOTPHandler(otpSvc)
	r.Post("/issueOtp", otpH.Issue)
	r.Post("/verifyOtp", otpH.Verify)
	r.Post("/sendWelcomeEmail", NewWelcomeHandler(welcomeSvc).Send)
	r.Get("/health", NewHealthHandler().Check)
	return r
}

func call(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- issueOtp ---

func TestIssue_Success(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("IssueOTP", mock.Anything, otp.IssueRequest{Email: "a@x.com"}).Return(nil)

	rr := call(newTestRouter(svc, nil), "/issueOtp", `{"data":{"email":"a@x.com"}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"result":{"success":true}}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestIssue_DomainFailureIsResult(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("IssueOTP", mock.Anything, otp.IssueRequest{}).Return(domain.NewValidationError("Email is required"))

	rr := call(newTestRouter(svc, nil), "/issueOtp", `{"data":{}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"result":{"success":false,"error":"Email is required"}}`, rr.Body.String())
}

func TestIssue_MalformedCall(t *testing.T) {
	for name, body := range map[string]string{
		"not json":     `email=a@x.com`,
		"missing data": `{"email":"a@x.com"}`,
		"null data":    `{"data":null}`,
		"data not obj": `{"data":"a@x.com"}`,
		"empty body":   ``,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &mockOTPSvc{}

			rr := call(newTestRouter(svc, nil), "/issueOtp", body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":{"status":"INVALID_ARGUMENT","message":"Request body must be a JSON object with a data field"}}`, rr.Body.String())
			svc.AssertNotCalled(t, "IssueOTP", mock.Anything, mock.Anything)
		})
	}
}

func TestIssue_NonStringEmailIsValidationResult(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("IssueOTP", mock.Anything, otp.IssueRequest{}).Return(domain.NewValidationError("Email is required"))

	rr := call(newTestRouter(svc, nil), "/issueOtp", `{"data":{"email":42}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"result":{"success":false,"error":"Email is required"}}`, rr.Body.String())
	svc.AssertExpectations(t)
}

// --- verifyOtp ---

func TestVerify_Success(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyOTP", mock.Anything, otp.VerifyRequest{Email: "a@x.com", Code: "123456"}).Return(nil)

	rr := call(newTestRouter(svc, nil), "/verifyOtp", `{"data":{"email":"a@x.com","code":"123456"}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"result":{"success":true}}`, rr.Body.String())
}

func TestVerify_AcceptsLegacyOtpField(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyOTP", mock.Anything, otp.VerifyRequest{Email: "a@x.com", Code: "654321"}).Return(nil)

	rr := call(newTestRouter(svc, nil), "/verifyOtp", `{"data":{"email":"a@x.com","otp":"654321"}}`)

	assert.JSONEq(t, `{"result":{"success":true}}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestVerify_NumericCodeIsResult(t *testing.T) {
	for _, body := range []string{
		`{"data":{"email":"a@x.com","otp":123456}}`,
		`{"data":{"email":"a@x.com","code":123456}}`,
	} {
		svc := &mockOTPSvc{}
		svc.On("VerifyOTP", mock.Anything, otp.VerifyRequest{Email: "a@x.com", Code: "123456", CodeNotString: true}).Return(domain.ErrInvalidCode)

		rr := call(newTestRouter(svc, nil), "/verifyOtp", body)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"result":{"success":false,"error":"Invalid OTP"}}`, rr.Body.String())
		svc.AssertExpectations(t)
	}
}

func TestVerify_NullCodeFallsBackToOtp(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyOTP", mock.Anything, otp.VerifyRequest{Email: "a@x.com", Code: "654321"}).Return(nil)

	rr := call(newTestRouter(svc, nil), "/verifyOtp", `{"data":{"email":"a@x.com","code":null,"otp":"654321"}}`)

	assert.JSONEq(t, `{"result":{"success":true}}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestVerify_ErrorsSurfaceMessage(t *testing.T) {
	for _, err := range []error{domain.ErrNotFound, domain.ErrAlreadyUsed, domain.ErrExpired, domain.ErrInvalidCode} {
		svc := &mockOTPSvc{}
		svc.On("VerifyOTP", mock.Anything, mock.Anything).Return(err)

		rr := call(newTestRouter(svc, nil), "/verifyOtp", `{"data":{"email":"a@x.com","code":"000000"}}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"result":{"success":false,"error":"`+err.Error()+`"}}`, rr.Body.String())
	}
}

// --- sendWelcomeEmail ---

func TestWelcome_Success(t *testing.T) {
	svc := &mockWelcomeSvc{}
	svc.On("SendWelcomeEmail", mock.Anything, welcome.Request{Email: "d@x.com", DisplayName: "Dee"}).Return(nil)

	rr := call(newTestRouter(nil, svc), "/sendWelcomeEmail", `{"data":{"email":"d@x.com","displayName":"Dee"}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"result":{"success":true}}`, rr.Body.String())
}

func TestWelcome_NonStringNameIsValidationResult(t *testing.T) {
	svc := &mockWelcomeSvc{}
	svc.On("SendWelcomeEmail", mock.Anything, welcome.Request{Email: "d@x.com"}).
		Return(domain.NewValidationError("Email and display name are required"))

	rr := call(newTestRouter(nil, svc), "/sendWelcomeEmail", `{"data":{"email":"d@x.com","displayName":{"first":"Dee"}}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"result":{"success":false,"error":"Email and display name are required"}}`, rr.Body.String())
}

func TestWelcome_MalformedCall(t *testing.T) {
	svc := &mockWelcomeSvc{}

	rr := call(newTestRouter(nil, svc), "/sendWelcomeEmail", `[]`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "SendWelcomeEmail", mock.Anything, mock.Anything)
}

// --- health ---

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	newTestRouter(nil, nil).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
