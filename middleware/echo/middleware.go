package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/middleware"
)

// ValidateJSON decodes the request body, validates it against rootType in
// repo, and on success stores the decoded value in context before calling
// next. On failure it writes a 400 with the collected Issues and does not
// call next.
func ValidateJSON(repo skema.Repository, rootType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value, err := middleware.DecodeBody(c.Request().Body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			issues := skema.Validate(value, repo, rootType)
			if len(issues) > 0 {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(issues))
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), value)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValue fetches the validated request value from echo.Context.
func GetValue(c echo.Context) (any, bool) {
	return middleware.ValueFromContext(c.Request().Context())
}
