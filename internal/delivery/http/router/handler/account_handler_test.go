package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpmiddleware "eats/internal/delivery/http/middleware"
	"eats/internal/delivery/http/validator"
	"eats/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// stubUsecase returns canned outputs so handler mapping can be tested in
// isolation.
type stubUsecase struct {
	register    *usecase.RegisterOutput
	login       *usecase.LoginOutput
	profile     *usecase.ProfileOutput
	editProfile *usecase.EditProfileOutput
	verifyEmail *usecase.VerifyEmailOutput
}

func (s *stubUsecase) Register(ctx context.Context, input *usecase.RegisterInput) *usecase.RegisterOutput {
	return s.register
}

func (s *stubUsecase) Login(ctx context.Context, input *usecase.LoginInput) *usecase.LoginOutput {
	return s.login
}

func (s *stubUsecase) GetProfile(ctx context.Context, accountID uuid.UUID) *usecase.ProfileOutput {
	return s.profile
}

func (s *stubUsecase) EditProfile(ctx context.Context, accountID uuid.UUID, input *usecase.EditProfileInput) *usecase.EditProfileOutput {
	return s.editProfile
}

func (s *stubUsecase) VerifyEmail(ctx context.Context, code string) *usecase.VerifyEmailOutput {
	return s.verifyEmail
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestHandler(uc usecase.AccountUsecase) *AccountHandler {
	return NewAccountHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAccountHandler_Register_Success(t *testing.T) {
	uc := &stubUsecase{register: &usecase.RegisterOutput{Result: usecase.Succeed()}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodPost, "/accounts",
		`{"email":"owner@example.com","password":"hunter22","role":"owner"}`)

	err := h.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestAccountHandler_Register_EmailTaken(t *testing.T) {
	uc := &stubUsecase{register: &usecase.RegisterOutput{
		Result: usecase.Fail("The email has taken already"),
	}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodPost, "/accounts",
		`{"email":"owner@example.com","password":"hunter22","role":"owner"}`)

	err := h.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "The email has taken already")
}

func TestAccountHandler_Register_InvalidRole(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodPost, "/accounts",
		`{"email":"owner@example.com","password":"hunter22","role":"superadmin"}`)

	err := h.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountHandler_Register_InvalidEmail(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, _ := newTestContext(t, http.MethodPost, "/accounts",
		`{"email":"not-an-email","password":"hunter22","role":"owner"}`)

	// Validation failures surface as an error for the error middleware.
	err := h.Register(c)
	assert.Error(t, err)
}

func TestAccountHandler_Login_Success(t *testing.T) {
	uc := &stubUsecase{login: &usecase.LoginOutput{
		Result: usecase.Succeed(),
		Token:  "signed-token",
	}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"client@example.com","password":"hunter22"}`)

	err := h.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed-token")
}

func TestAccountHandler_Login_WrongPassword(t *testing.T) {
	uc := &stubUsecase{login: &usecase.LoginOutput{
		Result: usecase.Fail("Wrong password"),
	}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"client@example.com","password":"wrong"}`)

	err := h.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong password")
}

func TestAccountHandler_GetProfile_Success(t *testing.T) {
	accountID := uuid.New()
	uc := &stubUsecase{profile: &usecase.ProfileOutput{
		Result: usecase.Succeed(),
		Account: &usecase.AccountView{
			ID:       accountID,
			Email:    "client@example.com",
			Verified: true,
		},
	}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodGet, "/accounts/profile", "")
	c.Set(httpmiddleware.ContextKeyAccountID, accountID)

	err := h.GetProfile(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "client@example.com")
	// The password hash must never appear in responses.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAccountHandler_GetProfile_MissingAccountID(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodGet, "/accounts/profile", "")

	err := h.GetProfile(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountHandler_GetProfile_NotFound(t *testing.T) {
	uc := &stubUsecase{profile: &usecase.ProfileOutput{
		Result: usecase.Fail("User not found"),
	}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodGet, "/accounts/profile", "")
	c.Set(httpmiddleware.ContextKeyAccountID, uuid.New())

	err := h.GetProfile(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestAccountHandler_EditProfile_Success(t *testing.T) {
	uc := &stubUsecase{editProfile: &usecase.EditProfileOutput{Result: usecase.Succeed()}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodPut, "/accounts/profile",
		`{"email":"new@example.com"}`)
	c.Set(httpmiddleware.ContextKeyAccountID, uuid.New())

	err := h.EditProfile(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_VerifyEmail_Post(t *testing.T) {
	uc := &stubUsecase{verifyEmail: &usecase.VerifyEmailOutput{Result: usecase.Succeed()}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodPost, "/verify-email",
		`{"code":"code-123"}`)

	err := h.VerifyEmail(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_VerifyEmail_UnknownCode(t *testing.T) {
	uc := &stubUsecase{verifyEmail: &usecase.VerifyEmailOutput{
		Result: usecase.Fail("Verification doesn't exist"),
	}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodPost, "/verify-email",
		`{"code":"stale"}`)

	err := h.VerifyEmail(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Verification doesn't exist")
}

func TestAccountHandler_VerifyEmailByQuery(t *testing.T) {
	uc := &stubUsecase{verifyEmail: &usecase.VerifyEmailOutput{Result: usecase.Succeed()}}
	h := newTestHandler(uc)

	c, rec := newTestContext(t, http.MethodGet, "/verify-email?code=code-123", "")

	err := h.VerifyEmailByQuery(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_VerifyEmailByQuery_MissingCode(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodGet, "/verify-email", "")

	err := h.VerifyEmailByQuery(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	err := HealthCheck(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
