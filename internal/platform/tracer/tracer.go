package tracer

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
)

type Options struct {
	ServiceName string
	Endpoint    string
	// SampleRatio applies to root spans; children follow their parent.
	SampleRatio float64
}

// InitTracer installs the global tracer provider and W3C propagators.
// Without an endpoint, or if the exporter cannot be built, spans are still
// recorded locally so request ids and span contexts keep working.
func InitTracer(opts Options, appLogger *logger.Logger) *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ratio := opts.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(serviceResource(opts.ServiceName, appLogger)),
	}

	if opts.Endpoint == "" {
		appLogger.Info("Trace export disabled, OTEL_EXPORTER_OTLP_ENDPOINT is empty")
	} else if exporter, err := newExporter(opts.Endpoint); err != nil {
		appLogger.Error("Failed to create OTLP trace exporter, spans stay local",
			zap.String("endpoint", opts.Endpoint), zap.Error(err))
	} else {
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter))
		appLogger.Info("Exporting traces",
			zap.String("service_name", opts.ServiceName),
			zap.String("endpoint", opts.Endpoint),
			zap.Float64("sample_ratio", ratio))
	}

	tp := sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(tp)
	return tp
}

func newExporter(endpoint string) (sdktrace.SpanExporter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}

func serviceResource(serviceName string, appLogger *logger.Logger) *resource.Resource {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		appLogger.Warn("Falling back to default trace resource", zap.Error(err))
		return resource.Default()
	}
	return res
}
