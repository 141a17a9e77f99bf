package publisher

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/pkg/tracing"
)

// GetPublisherUseCase 出版社详情用例
type GetPublisherUseCase struct {
	publishers publisher.Repository
	books      book.Repository
	pageSize   int
}

// NewGetPublisherUseCase 创建出版社详情用例
func NewGetPublisherUseCase(publishers publisher.Repository, books book.Repository, pageSize int) *GetPublisherUseCase {
	return &GetPublisherUseCase{publishers: publishers, books: books, pageSize: pageSize}
}

// GetPublisherRequest 出版社详情请求
type GetPublisherRequest struct {
	ID   uint
	Page string
}

// GetPublisherResponse 出版社详情
type GetPublisherResponse struct {
	Publisher *publisher.Publisher
	Books     query.Page[*book.Book]
}

// Execute 查询出版社详情及其出版的图书(按数据集顺序分页)
func (uc *GetPublisherUseCase) Execute(ctx context.Context, req GetPublisherRequest) (*GetPublisherResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.GetPublisher")
	defer span.End()

	p, err := uc.publishers.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	books, err := uc.books.ListByPublisherID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	state := query.State{Facet: query.FacetAll, Page: query.ParsePage(req.Page)}
	return &GetPublisherResponse{
		Publisher: p,
		Books:     query.Run(books, query.Spec[*book.Book]{}, state, uc.pageSize),
	}, nil
}
