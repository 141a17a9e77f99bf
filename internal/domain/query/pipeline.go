// Package query 实现列表页共用的查询管道：文本过滤 → 分面过滤 → 稳定排序 → 分页
//
// 设计说明:
// 1. 三个列表页的差异(搜索字段、分面字段、允许的排序)由Spec[T]描述，管道本身只有一份实现
// 2. Run是纯函数：不修改输入切片，不持有跨调用状态，可被任意goroutine并发调用
// 3. 输入规范化(页码、方向、排序字段校验)在ParseState完成，Run只处理已规范化的State
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField 一个允许的排序字段及其取值函数
// 数值字段与字符串字段二选一
type SortField[T any] struct {
	Key     string
	numeric func(T) int64
	text    func(T) string
}

// Numeric 数值排序字段(如出版年份、图书数量)
func Numeric[T any](key string, get func(T) int64) SortField[T] {
	return SortField[T]{Key: key, numeric: get}
}

// Text 字符串排序字段，按区域规则比较
func Text[T any](key string, get func(T) string) SortField[T] {
	return SortField[T]{Key: key, text: get}
}

// Spec 某类实体的查询参数化描述
type Spec[T any] struct {
	// Search 返回参与文本过滤的字段，为nil时文本过滤不生效
	Search func(T) []string

	// Facet 返回分面字段的值，为nil时分面过滤不生效
	Facet func(T) string

	// Sorts 允许的排序字段(顺序即排序链接的展示顺序)
	Sorts []SortField[T]

	// DefaultSort 未指定sort参数时使用的字段，空串表示保持数据集原顺序
	DefaultSort string

	// DefaultDirection 未指定dir参数时的方向
	DefaultDirection Direction

	// Locale 字符串比较使用的语言规则，零值为根排序规则
	Locale language.Tag
}

// Validate 校验Spec本身的配置
// 在构造用例时调用，配置错误应在启动阶段暴露
func (s Spec[T]) Validate() error {
	seen := make(map[string]bool, len(s.Sorts))
	for _, f := range s.Sorts {
		if f.Key == "" {
			return fmt.Errorf("排序字段名不能为空")
		}
		if seen[f.Key] {
			return fmt.Errorf("排序字段重复: %s", f.Key)
		}
		seen[f.Key] = true
		if (f.numeric == nil) == (f.text == nil) {
			return fmt.Errorf("排序字段%s必须且只能有一个取值函数", f.Key)
		}
	}
	if s.DefaultSort != "" && !seen[s.DefaultSort] {
		return fmt.Errorf("默认排序字段不存在: %s", s.DefaultSort)
	}
	switch s.DefaultDirection {
	case "", Asc, Desc:
	default:
		return fmt.Errorf("无效的默认排序方向: %s", s.DefaultDirection)
	}
	return nil
}

// SortKeys 返回允许的排序字段名
func (s Spec[T]) SortKeys() []string {
	keys := make([]string, len(s.Sorts))
	for i, f := range s.Sorts {
		keys[i] = f.Key
	}
	return keys
}

func (s Spec[T]) sortField(key string) (SortField[T], bool) {
	for _, f := range s.Sorts {
		if f.Key == key {
			return f, true
		}
	}
	return SortField[T]{}, false
}

// Page 一次查询的结果页
type Page[T any] struct {
	Items         []T // 当前页的记录，长度 <= PageSize
	TotalMatching int // 过滤后的记录总数
	TotalPages    int // 总页数，至少为1
	CurrentPage   int // 实际返回的页码，已钳制到[1, TotalPages]
	PageSize      int
	RequestedPage int // 调用方请求的页码(规范化之后)
}

// Clamped 请求页码是否被钳制过
func (p Page[T]) Clamped() bool {
	return p.RequestedPage != p.CurrentPage
}

// Run 执行查询管道
//
// 阶段严格按顺序执行:
// 1. 文本过滤：不区分大小写的子串匹配，空查询匹配全部
// 2. 分面过滤：精确匹配(区分大小写)，"all"或空串不过滤
// 3. 稳定排序：相等键保持原相对顺序，保证多次渲染分页结果一致
// 4. 分页：总页数至少为1，页码钳制到[1, 总页数]
//
// state.SortKey必须已通过ParseState校验；pageSize必须为正数(由配置校验保证)
func Run[T any](items []T, spec Spec[T], state State, pageSize int) Page[T] {
	if pageSize < 1 {
		panic(fmt.Sprintf("query: pageSize必须为正数, got=%d", pageSize))
	}

	// 1+2. 过滤(结果写入新切片，不修改输入)
	matched := filter(items, spec, state)

	// 3. 排序
	if state.SortKey != "" {
		field, ok := spec.sortField(state.SortKey)
		if !ok {
			panic(fmt.Sprintf("query: 未校验的排序字段 %q", state.SortKey))
		}
		sortStable(matched, field, state.Direction, spec.Locale)
	}

	// 4. 分页
	return paginate(matched, state.Page, pageSize)
}

func filter[T any](items []T, spec Spec[T], state State) []T {
	q := strings.ToLower(state.Text)
	facet := state.Facet
	if facet == FacetAll {
		facet = ""
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesText(item, spec.Search, q) {
			continue
		}
		if facet != "" && spec.Facet != nil && spec.Facet(item) != facet {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

func matchesText[T any](item T, search func(T) []string, q string) bool {
	if q == "" || search == nil {
		return true
	}
	for _, field := range search(item) {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func sortStable[T any](items []T, field SortField[T], dir Direction, locale language.Tag) {
	factor := dir.factor()

	if field.numeric != nil {
		slices.SortStableFunc(items, func(a, b T) int {
			return cmp.Compare(field.numeric(a), field.numeric(b)) * factor
		})
		return
	}

	// Collator内部有缓冲区，不能跨goroutine共享，每次排序单独创建
	col := collate.New(locale)
	slices.SortStableFunc(items, func(a, b T) int {
		return col.CompareString(field.text(a), field.text(b)) * factor
	})
}

func paginate[T any](matched []T, requested, pageSize int) Page[T] {
	if requested < 1 {
		requested = 1
	}

	total := len(matched)
	totalPages := max(1, (total+pageSize-1)/pageSize)
	current := min(requested, totalPages)

	start := (current - 1) * pageSize
	end := min(start+pageSize, total)

	return Page[T]{
		Items:         matched[start:end],
		TotalMatching: total,
		TotalPages:    totalPages,
		CurrentPage:   current,
		PageSize:      pageSize,
		RequestedPage: requested,
	}
}

// Facets 返回分面候选值："all"在前，其余按首次出现顺序去重
func Facets[T any](items []T, facet func(T) string) []string {
	values := []string{FacetAll}
	seen := make(map[string]bool)
	for _, item := range items {
		v := facet(item)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
