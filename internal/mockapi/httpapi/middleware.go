package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/common"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/auth"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// protect admits requests carrying a valid bearer token of an existing
// user. Everything else gets the unauthorized sentinel.
func (h *Handler) protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(c.GetHeader(common.AuthorizationHeaderName), " ")
		if scheme != strings.TrimSpace(common.BearerPrefix) || token == "" {
			unauthorized(c)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, h.secret)
		if err != nil {
			h.log.Debug(c.Request.Context(), "token rejected", "error", err)
			unauthorized(c)
			return
		}
		if _, err := h.store.User(userID); err != nil {
			unauthorized(c)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetHeader(common.RequestIDHeaderName),
		)
	}
}
