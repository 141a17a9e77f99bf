package fixture

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/publisher"
)

// publisherRepository 出版社仓储实现(内置数据集)
type publisherRepository struct {
	store *Store
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(store *Store) publisher.Repository {
	return &publisherRepository{store: store}
}

// List 返回全部出版社
func (r *publisherRepository) List(ctx context.Context) ([]*publisher.Publisher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	publishers := make([]*publisher.Publisher, len(r.store.publishers))
	for i := range r.store.publishers {
		p := r.store.publishers[i]
		publishers[i] = &p
	}
	return publishers, nil
}

// FindByID 根据ID查找出版社
func (r *publisherRepository) FindByID(ctx context.Context, id uint) (*publisher.Publisher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.store.publisherIndex[id]
	if !ok {
		return nil, publisher.ErrPublisherNotFound
	}
	p := r.store.publishers[i]
	return &p, nil
}
