// Package telemetry はOpenTelemetryによるトレースの初期化を提供します。
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "gitris-solo"
	serviceVersion = "0.1.0"
)

// Setup はOTLP HTTPエクスポーターでトレースプロバイダーを初期化し、グローバルに登録します。
// エンドポイントやヘッダーは標準の OTEL_EXPORTER_OTLP_* 環境変数から読み込まれます。
// 終了時に呼び出すシャットダウン関数を返します。
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("OTLPエクスポーターの作成に失敗しました: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("リソースの作成に失敗しました: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer はコンポーネント名付きのトレーサーを返します。
// Setup が呼ばれていない場合はグローバルの no-op プロバイダーのトレーサーになります。
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("gitris-solo/" + name)
}

// NoopTracer は何も記録しないトレーサーを返します。
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("gitris-solo/noop")
}
