package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID extracts the authenticated user id from the request context
// for per-user keying (rate limits, cache partitions). Unauthenticated
// requests share the "guest" bucket.
func userID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "guest"
	}
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%.0f", id)
	case uint64:
		return fmt.Sprintf("%d", id)
	}
	return "guest"
}
