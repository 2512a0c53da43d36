package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/middleware"
)

// ValidateJSON decodes the request body, validates it against rootType in
// repo, and on success stores the decoded value in the request context
// before calling the next handler. On failure it aborts with a 400 and the
// collected Issues.
func ValidateJSON(repo skema.Repository, rootType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := middleware.DecodeBody(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		issues := skema.Validate(value, repo, rootType)
		if len(issues) > 0 {
			c.JSON(http.StatusBadRequest, middleware.ErrorPayload(issues))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), value))
		c.Next()
	}
}

// GetValue fetches the validated request value from gin.Context.
func GetValue(c *gin.Context) (any, bool) {
	return middleware.ValueFromContext(c.Request.Context())
}
