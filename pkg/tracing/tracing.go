// Package tracing 提供基于OpenTelemetry的追踪
//
// # 核心概念
//
//   - Trace: 一个完整的请求链路,例如一次 GET /api/v1/books
//   - Span: 链路中的一个操作单元,例如ListBooks用例执行查询管道
//   - SpanContext: TraceID + SpanID,随context.Context在调用链中传递
//
// # 本服务的Span
//
//	Trace: GET /api/v1/books?genre=Mystery&page=2
//	└─ Span: catalog.ListBooks
//	   attributes: catalog.entity=books, query.page=2, query.total_matching=2
//
// 未启用追踪时不调用InitTracer,otel使用全局no-op Provider,StartSpan开销可以忽略
//
// # 使用示例
//
//	shutdown, err := tracing.InitTracer("bookhub", "localhost:4317", 1.0)
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "bookhub/catalog", "catalog.ListBooks",
//	    tracing.AttrEntity.String("books"))
//	defer span.End()
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// 目录查询Span的属性键
const (
	AttrEntity        = attribute.Key("catalog.entity")
	AttrPage          = attribute.Key("query.page")
	AttrTotalMatching = attribute.Key("query.total_matching")
)

// InitTracer 初始化全局TracerProvider
// 参数说明:
// - serviceName: 服务名,显示在Jaeger UI中
// - endpoint: OTLP gRPC端点(host:port,默认端口4317)
// - sampleRatio: 采样比例,[0,1],1表示全部采样
//
// 返回的shutdown必须在程序退出前调用,否则可能丢失最后一批Span
func InitTracer(serviceName, endpoint string, sampleRatio float64) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter(连接是惰性的,Collector未启动不会导致初始化失败)
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource(附加到所有Span上的服务属性)
	res, err := resource.New(
		ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	// ParentBased: 上游已决定采样时跟随上游,否则按比例采样
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider和上下文传播器(W3C Trace Context + Baggage)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 从全局Provider获取Tracer并创建Span
// ctx包含父Span时新Span自动成为子Span
func StartSpan(ctx context.Context, tracerName, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// ExtractTraceID 从context中提取TraceID,没有有效Span时返回空串
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}
