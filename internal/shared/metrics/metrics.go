package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

const (
	meterName = "github.com/changhyeonkim/gym-member-api"

	attrMemberAction  = "member.action"
	attrMemberOutcome = "member.outcome"
	attrStoreBackend  = "store.backend"

	unknownRoute = "unknown"
)

var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics owns an OpenTelemetry meter provider exported through its own Prometheus
// registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	handler  http.Handler

	httpRequests metric.Int64Counter
	httpDuration metric.Float64Histogram
	memberEvents metric.Int64Counter

	degraded atomic.Int64
	backend  atomic.Value // string
}

// New returns nil when metrics are disabled.
func New(ctx context.Context, cfg *config.Config) (*Metrics, error) {
	if !cfg.Metrics.Enabled {
		slog.Info("메트릭 비활성화됨")
		return nil, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.App.Name),
			semconv.ServiceVersion(cfg.App.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("메트릭 리소스 생성 실패: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("Prometheus exporter 생성 실패: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "http_request_duration_seconds"},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{Boundaries: durationBuckets},
			},
		)),
	)

	m := &Metrics{
		provider: provider,
		handler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	m.backend.Store("")

	if err := m.createInstruments(provider.Meter(meterName)); err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	slog.Info("메트릭 초기화 완료", "exporter", "prometheus", "service", cfg.App.Name)
	return m, nil
}

func (m *Metrics) createInstruments(meter metric.Meter) error {
	var err error

	m.httpRequests, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.memberEvents, err = meter.Int64Counter(
		"member_events_total",
		metric.WithDescription("Member create, update and delete attempts by outcome"),
	)
	if err != nil {
		return fmt.Errorf("failed to create member_events_total counter: %w", err)
	}

	_, err = meter.Int64ObservableGauge(
		"member_store_fallback",
		metric.WithDescription("1 when the process serves members from the in-memory fallback store"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(m.degraded.Load(), metric.WithAttributes(
				attribute.String(attrStoreBackend, m.backend.Load().(string)),
			))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create member_store_fallback gauge: %w", err)
	}

	return nil
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

// Middleware records request count and latency labelled by the matched route template,
// so /api/members/:id stays one series. Unmatched paths share the "unknown" route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unknownRoute
		}

		ctx := c.Request.Context()
		m.httpRequests.Add(ctx, 1, metric.WithAttributes(
			semconv.HTTPRequestMethodKey.String(c.Request.Method),
			semconv.HTTPRouteKey.String(route),
			semconv.HTTPResponseStatusCodeKey.Int(c.Writer.Status()),
		))
		m.httpDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			semconv.HTTPRequestMethodKey.String(c.Request.Method),
			semconv.HTTPRouteKey.String(route),
		))
	}
}

// RecordMemberEvent counts one member mutation attempt.
func (m *Metrics) RecordMemberEvent(ctx context.Context, action, outcome string) {
	if m == nil {
		return
	}
	m.memberEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrMemberAction, action),
		attribute.String(attrMemberOutcome, outcome),
	))
}

// SetStore publishes the active backend and whether it is the fallback.
func (m *Metrics) SetStore(backend string, degraded bool) {
	if m == nil {
		return
	}
	m.backend.Store(backend)
	if degraded {
		m.degraded.Store(1)
	} else {
		m.degraded.Store(0)
	}
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
