package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mockSvc "eats/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuthenticate(t *testing.T, m *AuthMiddleware, authHeader string) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/accounts/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return c, rec, handler(c)
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	accountID := uuid.New()
	tokenSvc.EXPECT().Verify("good-token").Return(accountID, nil)

	m := NewAuthMiddleware(tokenSvc)
	c, rec, err := runAuthenticate(t, m, "Bearer good-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, c.Get(ContextKeyAccountID))
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(mockSvc.NewMockTokenService(t))

	_, rec, err := runAuthenticate(t, m, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	m := NewAuthMiddleware(mockSvc.NewMockTokenService(t))

	_, rec, err := runAuthenticate(t, m, "Basic dXNlcjpwYXNz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("bad-token").Return(uuid.Nil, errors.New("invalid token"))

	m := NewAuthMiddleware(tokenSvc)
	c, rec, err := runAuthenticate(t, m, "Bearer bad-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, c.Get(ContextKeyAccountID))
}
