package book

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/pkg/tracing"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	books      book.Repository
	authors    author.Repository
	publishers publisher.Repository
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(books book.Repository, authors author.Repository, publishers publisher.Repository) *GetBookUseCase {
	return &GetBookUseCase{books: books, authors: authors, publishers: publishers}
}

// GetBookResponse 图书详情
type GetBookResponse struct {
	Book         *book.Book
	Author       *author.Author
	Publisher    *publisher.Publisher
	MoreByAuthor []*book.Book // 同一作者的其他图书(不含本书)
}

// Execute 查询图书详情
// 图书不存在返回ErrBookNotFound；作者、出版社在数据集加载时已校验存在
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*GetBookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.GetBook")
	defer span.End()

	// 1. 图书
	b, err := uc.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 作者、出版社
	a, err := uc.authors.FindByID(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}
	p, err := uc.publishers.FindByID(ctx, b.PublisherID)
	if err != nil {
		return nil, err
	}

	// 3. 同一作者的其他图书
	byAuthor, err := uc.books.ListByAuthorID(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}
	more := make([]*book.Book, 0, len(byAuthor))
	for _, other := range byAuthor {
		if other.ID != b.ID {
			more = append(more, other)
		}
	}

	return &GetBookResponse{
		Book:         b,
		Author:       a,
		Publisher:    p,
		MoreByAuthor: more,
	}, nil
}
