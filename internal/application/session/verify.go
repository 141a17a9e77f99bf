package session

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/session"
	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/pkg/jwt"
)

// Verifier 判断Cookie值是否代表已登录
type Verifier struct {
	mode        string
	jwtManager  *jwt.Manager
	revocations session.RevocationList
}

// NewVerifier 创建登录状态校验器
func NewVerifier(cfg config.AuthConfig, jwtManager *jwt.Manager, revocations session.RevocationList) *Verifier {
	return &Verifier{
		mode:        cfg.Mode,
		jwtManager:  jwtManager,
		revocations: revocations,
	}
}

// Verify 校验Cookie值
// - flag模式：值等于"1"
// - signed模式：签名有效、未过期且未被吊销
// 返回error只表示吊销列表不可用
func (v *Verifier) Verify(ctx context.Context, cookieValue string) (bool, error) {
	if v.mode != config.AuthModeSigned {
		return cookieValue == FlagCookieValue, nil
	}
	if cookieValue == "" {
		return false, nil
	}

	claims, err := v.jwtManager.ParseToken(cookieValue)
	if err != nil {
		return false, nil
	}

	revoked, err := v.revocations.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return false, err
	}
	return !revoked, nil
}
