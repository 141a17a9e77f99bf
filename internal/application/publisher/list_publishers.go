package publisher

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/text/language"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/pkg/metrics"
	"github.com/xiebiao/bookhub/pkg/tracing"
)

const tracerName = "bookhub/application/publisher"

// CountryParam 出版社列表的分面参数名
const CountryParam = "country"

// PublisherRow 列表中的一行：出版社 + 出版图书数量
type PublisherRow struct {
	Publisher *publisher.Publisher
	BookCount int
}

// ListPublishersUseCase 出版社列表查询用例
type ListPublishersUseCase struct {
	publishers publisher.Repository
	books      book.Repository
	spec       query.Spec[PublisherRow]
	pageSize   int
	metrics    *metrics.Metrics
}

// NewListPublishersUseCase 创建出版社列表用例
func NewListPublishersUseCase(
	publishers publisher.Repository,
	books book.Repository,
	pageSize int,
	locale language.Tag,
	m *metrics.Metrics,
) (*ListPublishersUseCase, error) {
	spec := query.Spec[PublisherRow]{
		Search: func(r PublisherRow) []string { return []string{r.Publisher.Name, r.Publisher.Country} },
		Facet:  func(r PublisherRow) string { return r.Publisher.Country },
		Sorts: []query.SortField[PublisherRow]{
			query.Text("name", func(r PublisherRow) string { return r.Publisher.Name }),
			query.Text("country", func(r PublisherRow) string { return r.Publisher.Country }),
			query.Numeric("foundedYear", func(r PublisherRow) int64 { return int64(r.Publisher.FoundedYear) }),
			query.Numeric("books", func(r PublisherRow) int64 { return int64(r.BookCount) }),
		},
		DefaultSort:      "name",
		DefaultDirection: query.Asc,
		Locale:           locale,
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("出版社查询配置错误: %w", err)
	}

	return &ListPublishersUseCase{
		publishers: publishers,
		books:      books,
		spec:       spec,
		pageSize:   pageSize,
		metrics:    m,
	}, nil
}

// ListPublishersRequest 出版社列表请求(URL原始字符串)
type ListPublishersRequest struct {
	Query   string
	Country string
	Sort    string
	Dir     string
	Page    string
}

// Values 转换为URL参数(空值不写入)
func (r ListPublishersRequest) Values() url.Values {
	v := url.Values{}
	for key, value := range map[string]string{
		"q":          r.Query,
		CountryParam: r.Country,
		"sort":       r.Sort,
		"dir":        r.Dir,
		"page":       r.Page,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}

// ListPublishersResponse 出版社列表响应
type ListPublishersResponse struct {
	State     query.State
	Result    query.Page[PublisherRow]
	Countries []string
	SortKeys  []string
}

// Execute 执行出版社列表查询
func (uc *ListPublishersUseCase) Execute(ctx context.Context, req ListPublishersRequest) (*ListPublishersResponse, error) {
	// 1. 解析查询参数
	state, err := uc.spec.ParseState(req.Values(), CountryParam)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.ListPublishers",
		tracing.AttrEntity.String("publishers"))
	defer span.End()

	// 2. 读取出版社并统计图书数量
	all, err := uc.publishers.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]PublisherRow, len(all))
	for i, p := range all {
		books, err := uc.books.ListByPublisherID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		rows[i] = PublisherRow{Publisher: p, BookCount: len(books)}
	}

	// 3. 查询管道
	page := query.Run(rows, uc.spec, state, uc.pageSize)

	span.SetAttributes(
		tracing.AttrPage.Int(page.CurrentPage),
		tracing.AttrTotalMatching.Int(page.TotalMatching),
	)
	uc.metrics.ObserveQuery("publishers", page.TotalMatching, page.Clamped())

	return &ListPublishersResponse{
		State:     state,
		Result:    page,
		Countries: query.Facets(rows, uc.spec.Facet),
		SortKeys:  uc.spec.SortKeys(),
	}, nil
}
