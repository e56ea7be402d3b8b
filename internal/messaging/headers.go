package messaging

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	headerContentType = "content-type"
	contentTypeJSON   = "application/json"
)

// Headers is a Kafka header list that OpenTelemetry propagators can read and write.
type Headers []kafka.Header

var _ propagation.TextMapCarrier = (*Headers)(nil)

// Get returns the last value stored under key.
func (h Headers) Get(key string) string {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Key == key {
			return string(h[i].Value)
		}
	}
	return ""
}

func (h *Headers) Set(key, value string) {
	for i := range *h {
		if (*h)[i].Key == key {
			(*h)[i].Value = []byte(value)
			return
		}
	}
	*h = append(*h, kafka.Header{Key: key, Value: []byte(value)})
}

func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	seen := make(map[string]struct{}, len(h))
	for _, header := range h {
		if _, ok := seen[header.Key]; ok {
			continue
		}
		seen[header.Key] = struct{}{}
		keys = append(keys, header.Key)
	}
	return keys
}

func injectTraceContext(ctx context.Context, msg *kafka.Message) {
	headers := Headers(msg.Headers)
	otel.GetTextMapPropagator().Inject(ctx, &headers)
	msg.Headers = headers
}

func extractTraceContext(ctx context.Context, msg kafka.Message) context.Context {
	headers := Headers(msg.Headers)
	return otel.GetTextMapPropagator().Extract(ctx, &headers)
}
