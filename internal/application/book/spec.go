package book

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/domain/query"
)

// GenreParam 图书列表的分面参数名
const GenreParam = "genre"

// BookRow 列表中的一行：图书 + 关联的作者名、出版社名
// 作者名参与文本搜索和排序，因此在进入查询管道前连接好
type BookRow struct {
	Book          *book.Book
	AuthorName    string
	PublisherName string
}

// newBookSpec 图书列表的查询参数化
// - 搜索：书名、作者名
// - 分面：类型(genre)
// - 排序：title、author、publishedYear、pages；默认不排序(保持数据集顺序)
func newBookSpec(locale language.Tag) (query.Spec[BookRow], error) {
	spec := query.Spec[BookRow]{
		Search: func(r BookRow) []string { return []string{r.Book.Title, r.AuthorName} },
		Facet:  func(r BookRow) string { return r.Book.Genre },
		Sorts: []query.SortField[BookRow]{
			query.Text("title", func(r BookRow) string { return r.Book.Title }),
			query.Text("author", func(r BookRow) string { return r.AuthorName }),
			query.Numeric("publishedYear", func(r BookRow) int64 { return int64(r.Book.PublishedYear) }),
			query.Numeric("pages", func(r BookRow) int64 { return int64(r.Book.Pages) }),
		},
		DefaultDirection: query.Asc,
		Locale:           locale,
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("图书查询配置错误: %w", err)
	}
	return spec, nil
}

// loadRows 读取全部图书并连接作者、出版社名称
func loadRows(ctx context.Context, books book.Repository, authors author.Repository, publishers publisher.Repository) ([]BookRow, error) {
	allBooks, err := books.List(ctx)
	if err != nil {
		return nil, err
	}
	authorNames, err := authorNameIndex(ctx, authors)
	if err != nil {
		return nil, err
	}
	allPublishers, err := publishers.List(ctx)
	if err != nil {
		return nil, err
	}
	publisherNames := make(map[uint]string, len(allPublishers))
	for _, p := range allPublishers {
		publisherNames[p.ID] = p.Name
	}

	rows := make([]BookRow, len(allBooks))
	for i, b := range allBooks {
		rows[i] = BookRow{
			Book:          b,
			AuthorName:    authorNames[b.AuthorID],
			PublisherName: publisherNames[b.PublisherID],
		}
	}
	return rows, nil
}

func authorNameIndex(ctx context.Context, authors author.Repository) (map[uint]string, error) {
	allAuthors, err := authors.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(allAuthors))
	for _, a := range allAuthors {
		names[a.ID] = a.Name
	}
	return names, nil
}
