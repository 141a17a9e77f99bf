package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookhub/internal/infrastructure/logger"
	"github.com/xiebiao/bookhub/pkg/response"
)

// RequestIDHeader 请求ID头
const RequestIDHeader = "X-Request-ID"

// Logger 请求日志中间件
// 1. 生成请求ID(客户端已携带则沿用)并回写到响应头
// 2. 把带request_id、trace_id的logger放入Context，供response.Error等使用
// 3. 请求结束后记录方法、路径、状态码、耗时、客户端IP
func Logger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLogger := logger.WithTraceID(c.Request.Context(), base.With(zap.String("request_id", requestID)))
		c.Set(response.LoggerKey, reqLogger)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("request", fields...)
		case latency > time.Second:
			reqLogger.Warn("slow request", fields...)
		default:
			reqLogger.Info("request", fields...)
		}
	}
}
