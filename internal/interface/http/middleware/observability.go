package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookhub/pkg/metrics"
	"github.com/xiebiao/bookhub/pkg/tracing"
)

const tracerName = "bookhub/interface/http"

// Tracing 为每个请求创建根span，后续用例的span挂在其下
// 必须注册在Logger之前，Logger才能取到trace_id
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), tracerName, c.Request.Method+" "+c.Request.URL.Path)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		// 路由匹配后才知道模板，改用模板命名避免span名随ID增长
		if path := c.FullPath(); path != "" {
			span.SetName(c.Request.Method + " " + path)
		}
	}
}

// Metrics HTTP请求指标
// path标签使用路由模板(如/api/v1/books/:id)，避免标签基数随ID增长
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := m.RequestStarted()
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		done(c.Request.Method, path, c.Writer.Status(), time.Since(start).Seconds())
	}
}
