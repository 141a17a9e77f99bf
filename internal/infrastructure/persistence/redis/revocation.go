package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookhub/internal/domain/session"
	"github.com/xiebiao/bookhub/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

const revokedKeyPrefix = "bookhub:revoked:"

// RevocationStore 基于Redis的Token吊销列表
// Key设计：bookhub:revoked:{jti}，过期时间等于Token剩余有效期，到期自动删除
// 所有Redis调用经过熔断器，连续失败后快速失败，登录门按未登录处理
type RevocationStore struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

var _ session.RevocationList = (*RevocationStore)(nil)

// NewRevocationStore 创建吊销列表
func NewRevocationStore(client *redis.Client, logger *zap.Logger) *RevocationStore {
	return &RevocationStore{
		client: client,
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "redis-revocation",
			MaxFailures: 5,
			OpenTimeout: 10 * time.Second,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				logger.Warn("熔断器状态变化",
					zap.String("name", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
	}
}

// Revoke 将Token ID加入吊销列表
// ttl<=0表示Token已过期，无需记录
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := s.breaker.Execute(func() error {
		return s.client.Set(ctx, revokedKeyPrefix+tokenID, "revoked", ttl).Err()
	})
	if err != nil {
		return redisError("吊销Token失败", err)
	}
	return nil
}

// IsRevoked 检查Token是否已被吊销
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var exists int64
	err := s.breaker.Execute(func() error {
		var err error
		exists, err = s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
		return err
	})
	if err != nil {
		return false, redisError("检查吊销列表失败", err)
	}
	return exists > 0, nil
}

func redisError(message string, err error) error {
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		message += "(熔断中)"
	}
	return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: message, Err: err}
}
