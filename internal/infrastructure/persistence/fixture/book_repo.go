package fixture

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/book"
)

// bookRepository 图书仓储实现(内置数据集)
type bookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

// List 返回全部图书
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.filter(func(*book.Book) bool { return true }), nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.store.bookIndex[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	b := r.store.books[i]
	return &b, nil
}

// ListByAuthorID 返回指定作者的图书(每次扫描全部图书)
func (r *bookRepository) ListByAuthorID(ctx context.Context, authorID uint) ([]*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.filter(func(b *book.Book) bool { return b.WrittenBy(authorID) }), nil
}

// ListByPublisherID 返回指定出版社的图书(每次扫描全部图书)
func (r *bookRepository) ListByPublisherID(ctx context.Context, publisherID uint) ([]*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.filter(func(b *book.Book) bool { return b.PublishedBy(publisherID) }), nil
}

// filter 复制满足条件的图书,调用方拿到的是独立副本
func (r *bookRepository) filter(keep func(*book.Book) bool) []*book.Book {
	books := make([]*book.Book, 0, len(r.store.books))
	for i := range r.store.books {
		if !keep(&r.store.books[i]) {
			continue
		}
		b := r.store.books[i]
		books = append(books, &b)
	}
	return books
}
