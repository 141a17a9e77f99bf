package query

import (
	"net/url"
	"strconv"
)

// 翻页、排序、分面链接都是"当前查询参数 + 覆盖一个字段"的纯函数，
// 其余生效中的过滤条件原样保留

// Href 在当前查询参数的基础上应用覆盖项生成链接
// 覆盖值为空串表示删除该参数；当前参数中的空值不会带入链接
func Href(path string, current url.Values, overrides map[string]string) string {
	params := url.Values{}
	for key, values := range current {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		params.Set(key, values[0])
	}
	for key, value := range overrides {
		if value == "" {
			params.Del(key)
			continue
		}
		params.Set(key, value)
	}

	qs := params.Encode()
	if qs == "" {
		return path
	}
	return path + "?" + qs
}

// NavLink 上一页/下一页
type NavLink struct {
	Page     int    `json:"page"`
	Href     string `json:"href"`
	Disabled bool   `json:"disabled"`
}

// PageLink 页码链接
type PageLink struct {
	Page    int    `json:"page"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

// Controls 分页控件："Previous / 1 2 3 / Next"
type Controls struct {
	Prev  NavLink    `json:"prev"`
	Next  NavLink    `json:"next"`
	Pages []PageLink `json:"pages"`
}

// Pagination 生成分页控件，只覆盖page参数
func Pagination(path string, current url.Values, currentPage, totalPages int) Controls {
	pageHref := func(p int) string {
		return Href(path, current, map[string]string{"page": strconv.Itoa(p)})
	}

	prev := max(1, currentPage-1)
	next := min(totalPages, currentPage+1)

	controls := Controls{
		Prev:  NavLink{Page: prev, Href: pageHref(prev), Disabled: currentPage <= 1},
		Next:  NavLink{Page: next, Href: pageHref(next), Disabled: currentPage >= totalPages},
		Pages: make([]PageLink, 0, totalPages),
	}
	for p := 1; p <= totalPages; p++ {
		controls.Pages = append(controls.Pages, PageLink{
			Page:    p,
			Href:    pageHref(p),
			Current: p == currentPage,
		})
	}
	return controls
}

// SortLink 表头排序链接
type SortLink struct {
	Key       string    `json:"key"`
	Href      string    `json:"href"`
	Active    bool      `json:"active"`
	Direction Direction `json:"direction,omitempty"` // 仅当前生效的排序字段有值
}

// SortLinkFor 生成某个字段的排序链接
// 当前已按该字段升序时切换为降序，否则为升序；只覆盖sort和dir，页码保持不变
func SortLinkFor(path string, current url.Values, state State, key string) SortLink {
	active := state.SortKey == key
	nextDir := Asc
	if active && state.Direction != Desc {
		nextDir = Desc
	}

	link := SortLink{
		Key:    key,
		Href:   Href(path, current, map[string]string{"sort": key, "dir": string(nextDir)}),
		Active: active,
	}
	if active {
		link.Direction = state.Direction
	}
	return link
}

// SortLinks 为所有允许的排序字段生成链接
func SortLinks(path string, current url.Values, state State, keys []string) []SortLink {
	links := make([]SortLink, len(keys))
	for i, key := range keys {
		links[i] = SortLinkFor(path, current, state, key)
	}
	return links
}

// FacetLink 分面切换链接
// 分面改变了结果基数，之前的页码失效，因此同时把page重置为1
type FacetLink struct {
	Value  string `json:"value"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// FacetLinks 为每个候选分面值生成链接，"all"对应删除分面参数
func FacetLinks(path string, current url.Values, facetKey, selected string, values []string) []FacetLink {
	if selected == "" {
		selected = FacetAll
	}

	links := make([]FacetLink, len(values))
	for i, value := range values {
		param := value
		if value == FacetAll {
			param = ""
		}
		links[i] = FacetLink{
			Value:  value,
			Href:   Href(path, current, map[string]string{facetKey: param, "page": "1"}),
			Active: value == selected,
		}
	}
	return links
}
