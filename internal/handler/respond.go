package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"parkly/internal/auth"
	"parkly/internal/errors"
)

// ContextKeyToken is where the JWT middleware stores the validated session claims.
const ContextKeyToken = "user"

// sessionID extracts the session id from the validated claims.
func sessionID(c echo.Context) (string, error) {
	claims, ok := c.Get(ContextKeyToken).(*auth.Claims)
	if !ok || claims.SessionID() == "" {
		return "", unauthorized()
	}
	return claims.SessionID(), nil
}

func unauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "invalid session token",
		Code:  "INVALID_SESSION",
	})
}

// domainError converts a service error into an echo HTTP error.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// quoteETag formats an etag for the ETag header.
func quoteETag(tag string) string {
	return `"` + tag + `"`
}

// parseIfMatch strips the weak prefix and quotes from an If-Match value.
func parseIfMatch(header string) string {
	header = strings.TrimSpace(header)
	if header == "*" {
		return ""
	}
	header = strings.TrimPrefix(header, "W/")
	return strings.Trim(header, `"`)
}
