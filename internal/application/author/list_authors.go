package author

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/text/language"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/pkg/metrics"
	"github.com/xiebiao/bookhub/pkg/tracing"
)

const tracerName = "bookhub/application/author"

// NationalityParam 作者列表的分面参数名
const NationalityParam = "nationality"

// AuthorRow 列表中的一行：作者 + 图书数量
type AuthorRow struct {
	Author    *author.Author
	BookCount int
}

// ListAuthorsUseCase 作者列表查询用例
// - 搜索：姓名、国籍
// - 分面：国籍
// - 排序：name、birthYear、books；默认按姓名升序
type ListAuthorsUseCase struct {
	authors  author.Repository
	books    book.Repository
	spec     query.Spec[AuthorRow]
	pageSize int
	metrics  *metrics.Metrics
}

// NewListAuthorsUseCase 创建作者列表用例
func NewListAuthorsUseCase(
	authors author.Repository,
	books book.Repository,
	pageSize int,
	locale language.Tag,
	m *metrics.Metrics,
) (*ListAuthorsUseCase, error) {
	spec := query.Spec[AuthorRow]{
		Search: func(r AuthorRow) []string { return []string{r.Author.Name, r.Author.Nationality} },
		Facet:  func(r AuthorRow) string { return r.Author.Nationality },
		Sorts: []query.SortField[AuthorRow]{
			query.Text("name", func(r AuthorRow) string { return r.Author.Name }),
			query.Numeric("birthYear", func(r AuthorRow) int64 { return int64(r.Author.BirthYear) }),
			query.Numeric("books", func(r AuthorRow) int64 { return int64(r.BookCount) }),
		},
		DefaultSort:      "name",
		DefaultDirection: query.Asc,
		Locale:           locale,
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("作者查询配置错误: %w", err)
	}

	return &ListAuthorsUseCase{
		authors:  authors,
		books:    books,
		spec:     spec,
		pageSize: pageSize,
		metrics:  m,
	}, nil
}

// ListAuthorsRequest 作者列表请求(URL原始字符串)
type ListAuthorsRequest struct {
	Query       string
	Nationality string
	Sort        string
	Dir         string
	Page        string
}

// Values 转换为URL参数(空值不写入)
func (r ListAuthorsRequest) Values() url.Values {
	v := url.Values{}
	for key, value := range map[string]string{
		"q":              r.Query,
		NationalityParam: r.Nationality,
		"sort":           r.Sort,
		"dir":            r.Dir,
		"page":           r.Page,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}

// ListAuthorsResponse 作者列表响应
type ListAuthorsResponse struct {
	State         query.State
	Result        query.Page[AuthorRow]
	Nationalities []string // 国籍分面候选值,"all"在前
	SortKeys      []string
}

// Execute 执行作者列表查询
func (uc *ListAuthorsUseCase) Execute(ctx context.Context, req ListAuthorsRequest) (*ListAuthorsResponse, error) {
	// 1. 解析查询参数
	state, err := uc.spec.ParseState(req.Values(), NationalityParam)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.ListAuthors",
		tracing.AttrEntity.String("authors"))
	defer span.End()

	// 2. 读取作者，图书数量每次按作者扫描图书计算
	allAuthors, err := uc.authors.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]AuthorRow, len(allAuthors))
	for i, a := range allAuthors {
		books, err := uc.books.ListByAuthorID(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		rows[i] = AuthorRow{Author: a, BookCount: len(books)}
	}

	// 3. 查询管道
	page := query.Run(rows, uc.spec, state, uc.pageSize)

	span.SetAttributes(
		tracing.AttrPage.Int(page.CurrentPage),
		tracing.AttrTotalMatching.Int(page.TotalMatching),
	)
	uc.metrics.ObserveQuery("authors", page.TotalMatching, page.Clamped())

	return &ListAuthorsResponse{
		State:         state,
		Result:        page,
		Nationalities: query.Facets(rows, uc.spec.Facet),
		SortKeys:      uc.spec.SortKeys(),
	}, nil
}
