package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsession "github.com/xiebiao/bookhub/internal/application/session"
	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
	"github.com/xiebiao/bookhub/pkg/response"
)

// SessionHandler 登录门HTTP处理器
type SessionHandler struct {
	cookieName string
	login      *appsession.LoginUseCase
	logout     *appsession.LogoutUseCase
}

// NewSessionHandler 创建登录处理器
func NewSessionHandler(cfg config.AuthConfig, login *appsession.LoginUseCase, logout *appsession.LogoutUseCase) *SessionHandler {
	return &SessionHandler{
		cookieName: cfg.CookieName,
		login:      login,
		logout:     logout,
	}
}

// Login 登录
// @Summary      登录
// @Description  不校验凭证，写入登录Cookie并返回清洗后的跳转地址
// @Tags         登录
// @Accept       json
// @Produce      json
// @Param        request  body  dto.LoginRequest false "登录参数"
// @Param        redirect query string           false "登录后跳转地址"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Router       /api/v1/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	// 1. 参数绑定：请求体可选，redirect也可以放在查询串里
	var req dto.LoginRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			bindFailed(c, err)
			return
		}
	}
	if req.Redirect == "" {
		req.Redirect = c.Query("redirect")
	}

	// 2. 调用应用层用例
	result, err := h.login.Execute(c.Request.Context(), appsession.LoginRequest{
		Name:     req.Name,
		Redirect: req.Redirect,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 写入Cookie(HttpOnly，MaxAge为0时为会话Cookie)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.CookieValue, int(result.MaxAge.Seconds()), "/", "", false, true)

	response.Success(c, &dto.LoginResponse{Redirect: result.Redirect})
}

// Logout 登出
// @Summary      登出
// @Description  清除登录Cookie，signed模式下吊销Token(吊销失败时仍清除Cookie)
// @Tags         登录
// @Produce      json
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Router       /api/v1/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	value, _ := c.Cookie(h.cookieName)

	// 吊销失败(如Redis不可用)不阻止登出：Cookie照常清除，错误只记录日志
	if err := h.logout.Execute(c.Request.Context(), value); err != nil {
		response.RequestLogger(c).Warn("revoke session token failed", zap.Error(err))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	response.Success(c, &dto.LoginResponse{Redirect: "/login"})
}
