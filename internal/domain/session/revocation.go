package session

import (
	"context"
	"time"
)

// RevocationList Token吊销列表
// 设计说明:
// 1. 签名Token本身无状态,登出时把Token ID加入吊销列表使其提前失效
// 2. 记录只需保留到Token原本的过期时间
// 3. 由infrastructure层实现(Redis);未启用Redis时使用NopRevocationList
type RevocationList interface {
	// Revoke 吊销Token,ttl为记录保留时间
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked 检查Token是否已被吊销
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NopRevocationList 不保存任何记录的吊销列表,登出只清除Cookie
type NopRevocationList struct{}

func (NopRevocationList) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopRevocationList) IsRevoked(context.Context, string) (bool, error) { return false, nil }
