// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter(计数器): 只增不减,如HTTP请求总数、目录查询总数
//   - Gauge(仪表盘): 可增可减的瞬时值,如正在处理的请求数
//   - Histogram(直方图): 观测值的分布,如请求耗时、每次查询命中的记录数
//
// # 注册方式
//
// 所有指标注册到Metrics自带的Registry,而不是prometheus默认Registry:
//   - /metrics只暴露本服务的指标
//   - 测试中可以多次New,不会出现重复注册panic
//
// # 使用示例
//
//	m := metrics.New()
//	router.GET("/metrics", gin.WrapH(m.Handler()))
//
//	m.ObserveQuery("books", page.TotalMatching, page.Clamped())
//
// # 命名规范
//
//  1. Counter以_total结尾
//  2. Histogram以单位结尾(_seconds),无单位的分布直接用名词(catalog_query_matches)
//  3. 标签只用有限取值的维度(method、status、entity),不要用记录ID
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 服务的全部指标
// 方法对nil接收者安全,未启用指标时传nil即可
type Metrics struct {
	registry *prometheus.Registry

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path(路由模板,如/api/v1/books/:id)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 目录查询指标

	// CatalogQueriesTotal 列表查询总数
	// 标签：entity(books/authors/publishers)
	CatalogQueriesTotal *prometheus.CounterVec

	// CatalogQueryMatches 每次查询过滤后的记录数分布
	CatalogQueryMatches *prometheus.HistogramVec

	// CatalogPageClampedTotal 请求页码超出范围被钳制的次数
	CatalogPageClampedTotal *prometheus.CounterVec
}

// New 创建并注册所有指标
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 内存数据集上的查询通常在毫秒以内
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "path"},
		),

		HTTPRequestsInProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		),

		CatalogQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_queries_total",
				Help: "目录列表查询总数",
			},
			[]string{"entity"},
		),

		CatalogQueryMatches: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_query_matches",
				Help:    "过滤后命中的记录数",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
			[]string{"entity"},
		),

		CatalogPageClampedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_page_clamped_total",
				Help: "请求页码被钳制到有效范围的次数",
			},
			[]string{"entity"},
		),
	}
}

// Registry 返回指标注册表
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回/metrics端点的HTTP处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveQuery 记录一次列表查询
func (m *Metrics) ObserveQuery(entity string, totalMatching int, clamped bool) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"entity": entity}
	m.CatalogQueriesTotal.With(labels).Inc()
	m.CatalogQueryMatches.With(labels).Observe(float64(totalMatching))
	if clamped {
		m.CatalogPageClampedTotal.With(labels).Inc()
	}
}

// RequestStarted 记录请求开始,返回的函数在请求结束时调用
func (m *Metrics) RequestStarted() func(method, path string, status int, seconds float64) {
	if m == nil {
		return func(string, string, int, float64) {}
	}
	m.HTTPRequestsInProgress.Inc()
	return func(method, path string, status int, seconds float64) {
		m.HTTPRequestsInProgress.Dec()
		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method": method,
			"path":   path,
			"status": strconv.Itoa(status),
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method": method,
			"path":   path,
		}).Observe(seconds)
	}
}
