package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	appauthor "github.com/xiebiao/bookhub/internal/application/author"
	appbook "github.com/xiebiao/bookhub/internal/application/book"
	apppublisher "github.com/xiebiao/bookhub/internal/application/publisher"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
)

// queryFlags 与HTTP列表接口相同的查询参数
type queryFlags struct {
	q     string
	facet string
	sort  string
	dir   string
	page  string
}

func newQueryCmd(opts *rootOptions) *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:       "query {books|authors|publishers}",
		Short:     "离线执行列表查询并输出JSON",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"books", "authors", "publishers"},
		Example: `  # 按成立年份降序列出出版社
  bookhub query publishers --sort foundedYear --dir desc

  # 搜索推理小说
  bookhub query books --facet Mystery --q christie`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			app, cleanup, err := InitializeApp(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := app.runQuery(cmd, args[0], flags)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&flags.q, "q", "", "文本搜索")
	cmd.Flags().StringVar(&flags.facet, "facet", "", "分面值(图书:genre 作者:nationality 出版社:country)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "排序字段")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "排序方向(asc|desc)")
	cmd.Flags().StringVar(&flags.page, "page", "", "页码")

	return cmd
}

// runQuery 调用与HTTP接口相同的用例，输出结构与接口的data一致(链接以/api/v1为前缀)
func (a *App) runQuery(cmd *cobra.Command, entity string, f *queryFlags) (*dto.ListResponse, error) {
	ctx := cmd.Context()
	path := "/api/v1/" + entity

	switch entity {
	case "books":
		req := appbook.ListBooksRequest{Query: f.q, Genre: f.facet, Sort: f.sort, Dir: f.dir, Page: f.page}
		r, err := a.ListBooks.Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		values := req.Values()
		return dto.NewListResponse(path, values, r.State, r.Result, dto.NewBookListItems(r.Result.Items), r.SortKeys).
			WithFacets(path, values, appbook.GenreParam, r.Genres), nil

	case "authors":
		req := appauthor.ListAuthorsRequest{Query: f.q, Nationality: f.facet, Sort: f.sort, Dir: f.dir, Page: f.page}
		r, err := a.ListAuthors.Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		values := req.Values()
		return dto.NewListResponse(path, values, r.State, r.Result, dto.NewAuthorListItems(r.Result.Items), r.SortKeys).
			WithFacets(path, values, appauthor.NationalityParam, r.Nationalities), nil

	case "publishers":
		req := apppublisher.ListPublishersRequest{Query: f.q, Country: f.facet, Sort: f.sort, Dir: f.dir, Page: f.page}
		r, err := a.ListPublishers.Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		values := req.Values()
		return dto.NewListResponse(path, values, r.State, r.Result, dto.NewPublisherListItems(r.Result.Items), r.SortKeys).
			WithFacets(path, values, apppublisher.CountryParam, r.Countries), nil
	}
	return nil, fmt.Errorf("未知的列表: %s", entity)
}
