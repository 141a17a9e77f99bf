package middleware

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsession "github.com/xiebiao/bookhub/internal/application/session"
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
	"github.com/xiebiao/bookhub/pkg/response"
)

// Authenticator 判断当前请求是否已登录
type Authenticator func(c *gin.Context) bool

// CookieAuthenticator 从登录Cookie中读取值交给Verifier校验
// 吊销列表不可用时记录日志并按未登录处理
func CookieAuthenticator(cookieName string, verifier *appsession.Verifier) Authenticator {
	return func(c *gin.Context) bool {
		value, err := c.Cookie(cookieName)
		if err != nil {
			return false
		}

		ok, err := verifier.Verify(c.Request.Context(), value)
		if err != nil {
			response.RequestLogger(c).Warn("verify login cookie failed", zap.Error(err))
			return false
		}
		return ok
	}
}

// RequireLogin 登录门
// 使用方式：
//
//	gated := v1.Group("")
//	gated.Use(middleware.RequireLogin(auth))
//	gated.GET("/books", bookHandler.List)
//
// 未登录时返回40100，data.redirect为登录页地址，登录后跳回当前请求
func RequireLogin(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth(c) {
			c.Next()
			return
		}

		response.ErrorWithData(c, apperrors.ErrUnauthorized, gin.H{
			"redirect": LoginRedirect(c),
		})
		c.Abort()
	}
}

// LoginRedirect 登录页地址，redirect参数为当前请求的路径+查询串
func LoginRedirect(c *gin.Context) string {
	return "/login?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
}
