package author

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/pkg/tracing"
)

// GetAuthorUseCase 作者详情用例
// 作者的图书按数据集顺序分页,不做过滤和排序
type GetAuthorUseCase struct {
	authors  author.Repository
	books    book.Repository
	pageSize int
}

// NewGetAuthorUseCase 创建作者详情用例
func NewGetAuthorUseCase(authors author.Repository, books book.Repository, pageSize int) *GetAuthorUseCase {
	return &GetAuthorUseCase{authors: authors, books: books, pageSize: pageSize}
}

// GetAuthorRequest 作者详情请求
type GetAuthorRequest struct {
	ID   uint
	Page string // 图书列表页码(URL原始字符串)
}

// GetAuthorResponse 作者详情
type GetAuthorResponse struct {
	Author *author.Author
	Books  query.Page[*book.Book]
}

// Execute 查询作者详情，作者不存在返回ErrAuthorNotFound
func (uc *GetAuthorUseCase) Execute(ctx context.Context, req GetAuthorRequest) (*GetAuthorResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.GetAuthor")
	defer span.End()

	a, err := uc.authors.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	books, err := uc.books.ListByAuthorID(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	state := query.State{Facet: query.FacetAll, Page: query.ParsePage(req.Page)}
	return &GetAuthorResponse{
		Author: a,
		Books:  query.Run(books, query.Spec[*book.Book]{}, state, uc.pageSize),
	}, nil
}
