// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	httpmiddleware "eats/internal/delivery/http/middleware"
	"eats/internal/delivery/http/response"
	domainerrors "eats/internal/domain/errors"
	"eats/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// knownFailures maps operation failure messages back onto their HTTP
// representation. Messages outside this list render as 500.
var knownFailures = []*domainerrors.BaseError{
	domainerrors.ErrAccountNotFound,
	domainerrors.ErrEmailTaken,
	domainerrors.ErrAccountCreationFailed,
	domainerrors.ErrWrongPassword,
	domainerrors.ErrVerificationNotFound,
}

// failure renders a failed operation result.
func failure(c echo.Context, message string) error {
	for _, known := range knownFailures {
		if known.Message() == message {
			return response.Error(c, known.HTTPCode(), known.ErrorCode(), message, "")
		}
	}

	return response.InternalServerError(c, "OPERATION_FAILED", message)
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}
	if !input.Role.IsValid() {
		return response.BadRequest(c, "INVALID_INPUT", "Unknown account role")
	}

	output := h.uc.Register(c.Request().Context(), input)
	if !output.OK {
		return failure(c, output.Error)
	}

	return response.Success(c, http.StatusCreated, output, "Account registered successfully")
}

// Login handles the authentication request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output := h.uc.Login(c.Request().Context(), input)
	if !output.OK {
		return failure(c, output.Error)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// GetProfile handles the request to get the caller's own profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	accountID, ok := c.Get(httpmiddleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	output := h.uc.GetProfile(c.Request().Context(), accountID)
	if !output.OK {
		return failure(c, output.Error)
	}

	return response.Success(c, http.StatusOK, output.Account, "Profile retrieved successfully")
}

// EditProfile handles the request to change the caller's email or password.
func (h *AccountHandler) EditProfile(c echo.Context) error {
	accountID, ok := c.Get(httpmiddleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.EditProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output := h.uc.EditProfile(c.Request().Context(), accountID, input)
	if !output.OK {
		return failure(c, output.Error)
	}

	return response.Success(c, http.StatusOK, output, "Profile updated successfully")
}

// verifyEmailRequest is the body accepted by the POST redeem route.
type verifyEmailRequest struct {
	Code string `json:"code" validate:"required"`
}

// VerifyEmail handles code redemption posted as JSON.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	var input *verifyEmailRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	return h.redeem(c, input.Code)
}

// VerifyEmailByQuery handles code redemption via the emailed link, which
// carries the code as a query parameter.
func (h *AccountHandler) VerifyEmailByQuery(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Verification code is required")
	}

	return h.redeem(c, code)
}

func (h *AccountHandler) redeem(c echo.Context, code string) error {
	output := h.uc.VerifyEmail(c.Request().Context(), code)
	if !output.OK {
		return failure(c, output.Error)
	}

	return response.Success(c, http.StatusOK, output, "Email verified successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
