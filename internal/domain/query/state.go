package query

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// factor 升序+1，降序-1；空值按升序处理
func (d Direction) factor() int {
	if d == Desc {
		return -1
	}
	return 1
}

// FacetAll 分面过滤的哨兵值，表示不过滤
const FacetAll = "all"

// ErrUnknownSortKey 排序字段不在允许列表中
// 在请求边界(ParseState)拒绝，不会进入Run
var ErrUnknownSortKey = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的排序字段")

// State 一次查询的全部参数
// 每个请求从URL参数重新构造，不跨请求保存
type State struct {
	Text      string    // 文本过滤(q)
	Facet     string    // 分面过滤值，空串或"all"表示不过滤
	SortKey   string    // 排序字段，空串表示保持数据集原顺序
	Direction Direction // 排序方向
	Page      int       // 请求页码(从1开始)
}

// ParsePage 解析页码
// 非数字、0、负数一律返回1；超出int范围的正数视为"很大的页码"，交给Run钳制到最后一页
// 解析是严格的：带非数字后缀的值(如"2abc")整体按非数字处理，返回1
func ParsePage(raw string) int {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-") {
			return math.MaxInt
		}
		return 1
	}
	if n < 1 {
		return 1
	}
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// ParseDirection 解析排序方向，只有"desc"表示降序
func ParseDirection(raw string) Direction {
	if raw == string(Desc) {
		return Desc
	}
	return Asc
}

// ParseState 把URL参数解析为State
// 参数说明:
// - values: 请求的查询参数(q, sort, dir, page, 以及分面参数)
// - facetKey: 分面参数名(如图书的"genre")，为空表示该列表不支持分面
//
// 除未知排序字段外，所有畸形输入都被规范化为安全默认值
func (s Spec[T]) ParseState(values url.Values, facetKey string) (State, error) {
	state := State{
		Text:      strings.TrimSpace(values.Get("q")),
		Facet:     FacetAll,
		SortKey:   s.DefaultSort,
		Direction: s.DefaultDirection,
		Page:      ParsePage(values.Get("page")),
	}

	if facetKey != "" && s.Facet != nil {
		if facet := values.Get(facetKey); facet != "" {
			state.Facet = facet
		}
	}

	if key := values.Get("sort"); key != "" {
		if _, ok := s.sortField(key); !ok {
			return State{}, ErrUnknownSortKey.WithDetail(key)
		}
		state.SortKey = key
	}

	if values.Has("dir") {
		state.Direction = ParseDirection(values.Get("dir"))
	}
	if state.Direction == "" {
		state.Direction = Asc
	}

	return state, nil
}
