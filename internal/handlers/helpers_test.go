package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestContext builds an Echo context carrying the acting user injected by
// the auth middleware.
func newTestContext(method, body string, userID primitive.ObjectID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if !userID.IsZero() {
		c.Set("userID", userID.Hex())
	}
	return c, rec
}

// newAnonymousContext builds an Echo context with no authenticated user.
func newAnonymousContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	return newTestContext(method, body, primitive.NilObjectID)
}

// httpCode asserts err is an *echo.HTTPError and returns its status code.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}
