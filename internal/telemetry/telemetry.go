package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clinic-management/clinic-service/internal/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	defaultMetricsInterval = 30 * time.Second
	exporterTimeout        = 5 * time.Second
)

// Config describes where telemetry goes and how the service identifies itself
type Config struct {
	ServiceName      string
	ServiceNamespace string
	ServiceVersion   string
	Environment      string
	OTLPEndpoint     string
	TracesSampler    string
	MetricsInterval  time.Duration
}

func FromConfig(c config.TelemetryConfig) Config {
	cfg := Config{
		ServiceName:      c.ServiceName,
		ServiceNamespace: c.ServiceNamespace,
		ServiceVersion:   c.ServiceVersion,
		Environment:      c.Environment,
		OTLPEndpoint:     c.OTLPEndpoint,
		TracesSampler:    c.TracesSampler,
		MetricsInterval:  c.MetricsInterval,
	}
	if cfg.MetricsInterval <= 0 {
		cfg.MetricsInterval = defaultMetricsInterval
	}
	return cfg
}

// Provider owns the SDK providers installed as the otel globals.
// Either field is nil when its exporter could not be created.
type Provider struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	log            logrus.FieldLogger
}

// InitProvider installs OTLP/gRPC tracing and metrics as the global providers.
// A collector that cannot be reached only disables the affected signal.
func InitProvider(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Provider, error) {
	log = log.WithField("endpoint", cfg.OTLPEndpoint)

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceNamespace(cfg.ServiceNamespace),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	p := &Provider{log: log}
	dial := grpc.WithTransportCredentials(insecure.NewCredentials())

	exportCtx, cancel := context.WithTimeout(ctx, exporterTimeout)
	defer cancel()

	spans, err := otlptracegrpc.New(exportCtx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithDialOption(dial),
		otlptracegrpc.WithTimeout(exporterTimeout),
	)
	if err != nil {
		log.WithError(err).Warn("Tracing disabled")
	} else {
		p.TracerProvider = trace.NewTracerProvider(
			trace.WithResource(res),
			trace.WithSampler(samplerFor(cfg.TracesSampler)),
			trace.WithBatcher(spans, trace.WithBatchTimeout(exporterTimeout)),
		)
		otel.SetTracerProvider(p.TracerProvider)
	}

	points, err := otlpmetricgrpc.New(exportCtx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithDialOption(dial),
		otlpmetricgrpc.WithTimeout(exporterTimeout),
	)
	if err != nil {
		log.WithError(err).Warn("Metric export disabled")
	} else {
		p.MeterProvider = metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(metric.NewPeriodicReader(points, metric.WithInterval(cfg.MetricsInterval))),
		)
		otel.SetMeterProvider(p.MeterProvider)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.WithFields(logrus.Fields{
		"tracing": p.TracerProvider != nil,
		"metrics": p.MeterProvider != nil,
	}).Info("✓ OpenTelemetry initialized")
	return p, nil
}

// samplerFor accepts always_on, always_off and traceidratio[:ratio]; ratio defaults to 0.1
func samplerFor(name string) trace.Sampler {
	kind, arg, _ := strings.Cut(name, ":")
	switch kind {
	case "always_off":
		return trace.NeverSample()
	case "traceidratio":
		ratio := 0.1
		if r, err := strconv.ParseFloat(arg, 64); err == nil && r >= 0 && r <= 1 {
			ratio = r
		}
		return trace.ParentBased(trace.TraceIDRatioBased(ratio))
	default:
		return trace.AlwaysSample()
	}
}

// Shutdown flushes pending spans and metric points
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		p.log.WithError(err).Error("OpenTelemetry shutdown incomplete")
	}
	return err
}
