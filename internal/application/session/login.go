package session

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/bookhub/internal/domain/session"
	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/pkg/jwt"
)

// FlagCookieValue flag模式下表示已登录的Cookie值
const FlagCookieValue = "1"

// LoginUseCase 登录用例
// 设计说明：
// 1. 登录门只是一个占位，不校验任何凭证
// 2. flag模式：Cookie值固定为"1"
// 3. signed模式：Cookie值为签名Token，有效期等于Token有效期
type LoginUseCase struct {
	mode       string
	cookieAge  time.Duration
	jwtManager *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(cfg config.AuthConfig, jwtManager *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{
		mode:       cfg.Mode,
		cookieAge:  cfg.CookieMaxAge,
		jwtManager: jwtManager,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Name     string // 可选，作为Token的subject
	Redirect string // 登录后跳转的地址
}

// LoginResponse 登录结果
type LoginResponse struct {
	CookieValue string
	MaxAge      time.Duration // 0表示会话Cookie
	Redirect    string        // 已清洗的跳转地址
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp := &LoginResponse{
		CookieValue: FlagCookieValue,
		MaxAge:      uc.cookieAge,
		Redirect:    SanitizeRedirect(req.Redirect),
	}
	if uc.mode != config.AuthModeSigned {
		return resp, nil
	}

	token, _, err := uc.jwtManager.GenerateToken(strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}
	resp.CookieValue = token
	resp.MaxAge = uc.jwtManager.TTL()
	return resp, nil
}

// SanitizeRedirect 只接受站内路径，其余一律回到首页
// "//host"和"/\host"会被浏览器当作其他站点，同样拒绝
func SanitizeRedirect(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, `/\`) {
		return "/"
	}
	return raw
}

// LogoutUseCase 登出用例
// signed模式下把Token ID加入吊销列表，保留到Token原本的过期时间
type LogoutUseCase struct {
	mode        string
	jwtManager  *jwt.Manager
	revocations session.RevocationList
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(cfg config.AuthConfig, jwtManager *jwt.Manager, revocations session.RevocationList) *LogoutUseCase {
	return &LogoutUseCase{
		mode:        cfg.Mode,
		jwtManager:  jwtManager,
		revocations: revocations,
	}
}

// Execute 执行登出，cookieValue为请求中携带的Cookie值(可能为空)
// 无效或已过期的Token无需吊销，直接视为成功
func (uc *LogoutUseCase) Execute(ctx context.Context, cookieValue string) error {
	if uc.mode != config.AuthModeSigned || cookieValue == "" {
		return nil
	}

	claims, err := uc.jwtManager.ParseToken(cookieValue)
	if err != nil {
		return nil
	}
	return uc.revocations.Revoke(ctx, claims.TokenID(), claims.Remaining(time.Now()))
}
