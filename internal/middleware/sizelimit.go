package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/randevuhq/randevu-api/internal/handler"
)

type SizeLimitConfig struct {
	MaxBodySize int64 // bytes
}

func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{MaxBodySize: 1 << 20}
}

// SizeLimit rejects requests whose declared body exceeds the limit.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > config.MaxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				handler.NewErrorResponse(fmt.Sprintf("body size exceeds %d bytes", config.MaxBodySize)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxBodySize)
		c.Next()
	}
}
