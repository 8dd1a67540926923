package telemetry

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Recorder matches the dashboard and command telemetry seam.
type Recorder interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// ZapRecorder writes telemetry events as structured log lines.
type ZapRecorder struct {
	logger *zap.Logger
}

// NewZapRecorder builds a recorder over logger.
func NewZapRecorder(logger *zap.Logger) *ZapRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapRecorder{logger: logger}
}

// Record logs the event at debug level with sorted payload fields.
func (r *ZapRecorder) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("event", event))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	r.logger.Debug("telemetry", fields...)
}

// PrometheusRecorder counts telemetry events by name and region.
type PrometheusRecorder struct {
	events *prometheus.CounterVec
}

// NewPrometheusRecorder registers the event counter on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campaign_dashboard",
		Name:      "events_total",
		Help:      "Dashboard telemetry events by name and region.",
	}, []string{"event", "region"})
	if reg != nil {
		if err := reg.Register(events); err != nil {
			return nil, fmt.Errorf("telemetry: register counter: %w", err)
		}
	}
	return &PrometheusRecorder{events: events}, nil
}

// Record increments the counter for event.
func (r *PrometheusRecorder) Record(_ context.Context, event string, payload map[string]any) {
	region, _ := payload["region"].(string)
	r.events.WithLabelValues(event, region).Inc()
}

// Counter exposes the underlying vector for tests and custom collectors.
func (r *PrometheusRecorder) Counter() *prometheus.CounterVec {
	return r.events
}

// Multi fans an event out to several recorders. Nil entries are skipped.
func Multi(recorders ...Recorder) Recorder {
	out := make(multi, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type multi []Recorder

func (m multi) Record(ctx context.Context, event string, payload map[string]any) {
	for _, r := range m {
		r.Record(ctx, event, payload)
	}
}
