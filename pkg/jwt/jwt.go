package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

const issuer = "bookhub"

// Manager JWT管理器
// 设计说明：
// 1. 登录门只需要一个会话Token,存放在HttpOnly Cookie中
// 2. 每个Token带唯一ID(jti),登出时把jti加入吊销列表即可让该Token失效
// 3. 吊销记录的有效期等于Token剩余有效期,过期后自动清理
type Manager struct {
	secret string        // JWT签名密钥
	ttl    time.Duration // Token有效期
	now    func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Claims 会话Token的Claims
// 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf、jti）
type Claims struct {
	jwt.RegisteredClaims
}

// TokenID 返回jti
func (c *Claims) TokenID() string {
	return c.ID
}

// Remaining Token剩余有效期(已过期返回0)
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// TTL Token有效期
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken 生成会话Token
// subject为登录时填写的名字,未填写时为"guest"
func (m *Manager) GenerateToken(subject string) (string, *Claims, error) {
	if subject == "" {
		subject = "guest"
	}
	now := m.now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", nil, apperrors.Wrap(err, "生成Token失败")
	}
	return signed, claims, nil
}

// ParseToken 解析并验证Token
// 1. 验证签名算法和签名（防止伪造）
// 2. 验证过期时间（exp）和生效时间（nbf）
// 3. 验证签发者
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}
