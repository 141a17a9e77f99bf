package book

import (
	"context"
	"net/url"

	"golang.org/x/text/language"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/pkg/metrics"
	"github.com/xiebiao/bookhub/pkg/tracing"
)

const tracerName = "bookhub/application/book"

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 文本搜索、类型分面、排序、分页全部交给通用查询管道
// 2. 每次请求从仓储重新读取数据,派生结果不跨请求缓存
// 3. 用例本身无状态,可被并发调用
type ListBooksUseCase struct {
	books      book.Repository
	authors    author.Repository
	publishers publisher.Repository
	spec       query.Spec[BookRow]
	pageSize   int
	metrics    *metrics.Metrics
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(
	books book.Repository,
	authors author.Repository,
	publishers publisher.Repository,
	pageSize int,
	locale language.Tag,
	m *metrics.Metrics,
) (*ListBooksUseCase, error) {
	spec, err := newBookSpec(locale)
	if err != nil {
		return nil, err
	}
	return &ListBooksUseCase{
		books:      books,
		authors:    authors,
		publishers: publishers,
		spec:       spec,
		pageSize:   pageSize,
		metrics:    m,
	}, nil
}

// ListBooksRequest 列表查询请求
// 所有字段保持URL中的原始字符串,解析与默认值处理在Execute中统一完成
type ListBooksRequest struct {
	Query string // q
	Genre string // genre
	Sort  string // sort
	Dir   string // dir
	Page  string // page
}

// Values 转换为URL参数(空值不写入)
func (r ListBooksRequest) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("q", r.Query)
	set(GenreParam, r.Genre)
	set("sort", r.Sort)
	set("dir", r.Dir)
	set("page", r.Page)
	return v
}

// ListBooksResponse 列表查询响应
type ListBooksResponse struct {
	State    query.State         // 规范化后的查询参数
	Result   query.Page[BookRow] // 当前页
	Genres   []string            // 类型分面候选值,"all"在前
	SortKeys []string            // 允许的排序字段
}

// Execute 执行列表查询
// 1. 解析查询参数(未知排序字段返回ErrUnknownSortKey)
// 2. 读取图书并连接作者名
// 3. 执行查询管道
// 4. 记录指标与追踪属性
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 解析查询参数
	state, err := uc.spec.ParseState(req.Values(), GenreParam)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.ListBooks",
		tracing.AttrEntity.String("books"))
	defer span.End()

	// 2. 读取数据
	rows, err := loadRows(ctx, uc.books, uc.authors, uc.publishers)
	if err != nil {
		return nil, err
	}

	// 3. 查询管道
	page := query.Run(rows, uc.spec, state, uc.pageSize)

	// 4. 可观测性
	span.SetAttributes(
		tracing.AttrPage.Int(page.CurrentPage),
		tracing.AttrTotalMatching.Int(page.TotalMatching),
	)
	uc.metrics.ObserveQuery("books", page.TotalMatching, page.Clamped())

	return &ListBooksResponse{
		State:    state,
		Result:   page,
		Genres:   query.Facets(rows, uc.spec.Facet),
		SortKeys: uc.spec.SortKeys(),
	}, nil
}
