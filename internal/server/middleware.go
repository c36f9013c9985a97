// SPDX-License-Identifier: MIT

package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/katalvlaran/spatialacc/internal/logging"
)

// HeaderRequestID carries the request identifier.
const HeaderRequestID = "X-Request-ID"

const ctxRequestID = "request_id"

// requestID keeps a caller-supplied X-Request-ID or assigns a new UUID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func accessLog(logger logr.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.V(logging.DEBUG).Info("Request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"requestID", c.GetString(ctxRequestID))
	}
}

// rateLimit rejects requests beyond the shared token bucket.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			s.fail(c, errRateLimited)
			return
		}
		c.Next()
	}
}
