package fixture

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/author"
)

// authorRepository 作者仓储实现(内置数据集)
type authorRepository struct {
	store *Store
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(store *Store) author.Repository {
	return &authorRepository{store: store}
}

// List 返回全部作者
func (r *authorRepository) List(ctx context.Context) ([]*author.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	authors := make([]*author.Author, len(r.store.authors))
	for i := range r.store.authors {
		a := r.store.authors[i]
		authors[i] = &a
	}
	return authors, nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.store.authorIndex[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	a := r.store.authors[i]
	return &a, nil
}
