package rest

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

const keyContextPrefix = "rest.key"

func keyContextKey(scope string) string {
	if scope == "" {
		return keyContextPrefix
	}
	return keyContextPrefix + "." + scope
}

// ExtractKey returns a gin middleware that decodes the primary key from the
// matched route and caches it on the gin.Context. The key is also attached to
// the request's log context as "primary_key".
//
// A key that fails to decode is left out and the request continues; the
// handler reports the failure when it calls KeyFrom.
func ExtractKey(cols []KeyColumn, scope string) gin.HandlerFunc {
	ctxKey := keyContextKey(scope)
	return func(c *gin.Context) {
		if _, exists := c.Get(ctxKey); exists {
			c.Next()
			return
		}

		key, err := IDFromPath(cols, scope, c.Params)
		if err == nil {
			c.Set(ctxKey, key)
			ctx := logger.WithContextAttrs(c.Request.Context(), slog.String("primary_key", key.String()))
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// KeyFrom returns the key cached by ExtractKey, or decodes it from the route
// when nothing was cached.
func KeyFrom(c *gin.Context, cols []KeyColumn, scope string) (Key, error) {
	if v, exists := c.Get(keyContextKey(scope)); exists {
		if key, ok := v.(Key); ok && len(key) == len(cols) {
			return key, nil
		}
	}
	return IDFromPath(cols, scope, c.Params)
}
