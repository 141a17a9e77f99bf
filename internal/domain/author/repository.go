package author

import (
	"context"
)

// Repository 作者仓储接口
// 返回的切片和实体均为副本
type Repository interface {
	// List 返回全部作者(数据集原顺序)
	List(ctx context.Context) ([]*Author, error)

	// FindByID 根据ID查找作者,不存在返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)
}
