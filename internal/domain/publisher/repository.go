package publisher

import (
	"context"
)

// Repository 出版社仓储接口
// 返回的切片和实体均为副本
type Repository interface {
	// List 返回全部出版社(数据集原顺序)
	List(ctx context.Context) ([]*Publisher, error)

	// FindByID 根据ID查找出版社,不存在返回ErrPublisherNotFound
	FindByID(ctx context.Context, id uint) (*Publisher, error)
}
