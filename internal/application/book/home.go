package book

import (
	"context"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/domain/query"
)

// FeaturedCount 首页推荐图书数量
const FeaturedCount = 6

// HomeUseCase 首页用例(公开，不需要登录)
type HomeUseCase struct {
	books      book.Repository
	authors    author.Repository
	publishers publisher.Repository
}

// NewHomeUseCase 创建首页用例
func NewHomeUseCase(books book.Repository, authors author.Repository, publishers publisher.Repository) *HomeUseCase {
	return &HomeUseCase{books: books, authors: authors, publishers: publishers}
}

// HomeStats 目录统计
type HomeStats struct {
	Books      int
	Authors    int
	Publishers int
	Genres     int // 不同类型的数量,由数据计算
}

// HomeResponse 首页数据
type HomeResponse struct {
	Featured []BookRow // 数据集中的前FeaturedCount本图书
	Stats    HomeStats
}

// Execute 生成首页数据
func (uc *HomeUseCase) Execute(ctx context.Context) (*HomeResponse, error) {
	rows, err := loadRows(ctx, uc.books, uc.authors, uc.publishers)
	if err != nil {
		return nil, err
	}
	allAuthors, err := uc.authors.List(ctx)
	if err != nil {
		return nil, err
	}
	allPublishers, err := uc.publishers.List(ctx)
	if err != nil {
		return nil, err
	}

	// Facets结果包含"all",类型数量需要减1
	genres := query.Facets(rows, func(r BookRow) string { return r.Book.Genre })

	return &HomeResponse{
		Featured: rows[:min(FeaturedCount, len(rows))],
		Stats: HomeStats{
			Books:      len(rows),
			Authors:    len(allAuthors),
			Publishers: len(allPublishers),
			Genres:     len(genres) - 1,
		},
	}, nil
}
