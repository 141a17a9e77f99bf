package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(当前实现为内置数据集)
// 2. 每次调用返回新的切片和新的实体副本,调用方可以自由排序、修改而不影响数据源
// 3. 更换为数据库实现时只需新增infrastructure实现,application层不受影响
type Repository interface {
	// List 返回全部图书(数据集原顺序)
	List(ctx context.Context) ([]*Book, error)

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// ListByAuthorID 返回指定作者的全部图书
	ListByAuthorID(ctx context.Context, authorID uint) ([]*Book, error)

	// ListByPublisherID 返回指定出版社的全部图书
	ListByPublisherID(ctx context.Context, publisherID uint) ([]*Book, error)
}
