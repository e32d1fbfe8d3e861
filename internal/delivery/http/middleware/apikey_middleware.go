package middleware

import (
	"github.com/labstack/echo/v4"
)

// APIKeyHeader is the canonical name of the key parameter. Existing
// integrations pass it as a query parameter; the header form is also
// accepted.
const APIKeyHeader = "X-API-Key"

// apiKeyContextKey stores the extracted key in the echo context.
const apiKeyContextKey = "apiKey"

// APIKeyMiddleware extracts the partner API key from the request. Key
// validation stays in the use case layer so that the middleware never
// needs a database round trip on its own.
type APIKeyMiddleware struct{}

// NewAPIKeyMiddleware is the constructor for APIKeyMiddleware.
func NewAPIKeyMiddleware() *APIKeyMiddleware {
	return &APIKeyMiddleware{}
}

// Extract pulls the API key out of the query string or header and makes
// it available to handlers. Missing keys pass through as empty strings
// and fail validation downstream, keeping the rejection uniform.
func (m *APIKeyMiddleware) Extract(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.QueryParam(APIKeyHeader)
		if key == "" {
			key = c.Request().Header.Get(APIKeyHeader)
		}
		c.Set(apiKeyContextKey, key)

		return next(c)
	}
}

// APIKeyFromContext returns the key extracted by the middleware, or an
// empty string when the route is not behind it.
func APIKeyFromContext(c echo.Context) string {
	key, _ := c.Get(apiKeyContextKey).(string)

	return key
}
