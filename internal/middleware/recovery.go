package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/foxfriends/woof/internal/pkg"
)

// Recovery converts a panic in a later handler into a logged error and the
// standard JSON envelope:
//
//	{"code": 500, "message": "internal server error", "data": null}
//
// When the handler had already written a response the status cannot change,
// so the panic is only logged. http.ErrAbortHandler is re-raised untouched
// for net/http to abort the connection.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}

			logger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("panic", v),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("route", c.FullPath()),
				slog.String("stack", string(debug.Stack())),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.Response{
				Code:    http.StatusInternalServerError,
				Message: "internal server error",
			})
		}()
		c.Next()
	}
}
