package dto

import (
	"net/url"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/pkg/response"
)

// ListResponse 列表页通用响应
// 设计说明:
// 1. 分页字段沿用response.PageData(list/total/page/page_size/total_pages)
// 2. 翻页、排序、分面链接都由当前请求的查询串生成，其他生效中的过滤条件原样保留
// 3. query回显规范化之后的查询参数，客户端据此渲染输入框和表头状态
type ListResponse struct {
	response.PageData
	Query      QueryState        `json:"query"`
	Pagination query.Controls    `json:"pagination"`
	SortLinks  []query.SortLink  `json:"sort_links"`
	Facets     []query.FacetLink `json:"facets,omitempty"`
}

// QueryState 规范化后的查询参数
type QueryState struct {
	Q     string `json:"q"`
	Facet string `json:"facet" example:"all"`
	Sort  string `json:"sort" example:"name"`
	Dir   string `json:"dir" example:"asc"`
	Page  int    `json:"page" example:"1"` // 请求的页码(钳制前)
}

// NewListResponse 由查询结果构建列表响应
// list为已转换好的当前页数据
func NewListResponse[T any](path string, current url.Values, state query.State, page query.Page[T], list interface{}, sortKeys []string) *ListResponse {
	return &ListResponse{
		PageData: response.PageData{
			List:       list,
			Total:      page.TotalMatching,
			Page:       page.CurrentPage,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
		Query: QueryState{
			Q:     state.Text,
			Facet: state.Facet,
			Sort:  state.SortKey,
			Dir:   string(state.Direction),
			Page:  state.Page,
		},
		Pagination: query.Pagination(path, current, page.CurrentPage, page.TotalPages),
		SortLinks:  query.SortLinks(path, current, state, sortKeys),
	}
}

// WithFacets 附加分面链接
func (r *ListResponse) WithFacets(path string, current url.Values, facetKey string, values []string) *ListResponse {
	r.Facets = query.FacetLinks(path, current, facetKey, r.Query.Facet, values)
	return r
}

// DetailBooks 详情页中分页的图书列表
type DetailBooks struct {
	response.PageData
	Pagination query.Controls `json:"pagination"`
}

// NewDetailBooks 构建详情页图书列表，翻页链接指向详情页本身
func NewDetailBooks(path string, current url.Values, page query.Page[*book.Book]) DetailBooks {
	return DetailBooks{
		PageData: response.PageData{
			List:       NewBookSummaries(page.Items),
			Total:      page.TotalMatching,
			Page:       page.CurrentPage,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
		Pagination: query.Pagination(path, current, page.CurrentPage, page.TotalPages),
	}
}
