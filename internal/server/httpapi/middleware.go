package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/docportal/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestID propagates X-Request-ID or assigns a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", getRequestID(c),
		)
	}
}

// only rejects every method but method with 405 and an Allow header.
// key names the JSON field carrying the message.
func only(method, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == method {
			c.Next()
			return
		}
		c.Header("Allow", method)
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
			key: common.ErrorMethodNotAllowed.Error() + ", use " + method,
		})
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// requireSession checks the bearer token when sessions are enforced.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.opts.RequireSession {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" || s.deps.Tokens == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": MsgSessionRequired})
			return
		}
		if _, err := s.deps.Tokens.Verify(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": MsgSessionRequired})
			return
		}
		c.Next()
	}
}
