package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaders(t *testing.T) {
	var headers Headers

	headers.Set("traceparent", "a")
	headers.Set("tracestate", "b")
	headers.Set("traceparent", "c")

	assert.Equal(t, "c", headers.Get("traceparent"))
	assert.Equal(t, "b", headers.Get("tracestate"))
	assert.Empty(t, headers.Get("missing"))
	assert.Equal(t, []string{"traceparent", "tracestate"}, headers.Keys())
	assert.Len(t, headers, 2)
}

func TestHeaders_DuplicateKeys(t *testing.T) {
	headers := Headers{
		{Key: "traceparent", Value: []byte("old")},
		{Key: "traceparent", Value: []byte("new")},
	}

	assert.Equal(t, "new", headers.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, headers.Keys())
}

func withTracing(t *testing.T) *sdktrace.TracerProvider {
	t.Helper()

	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()

	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return tp
}

func TestNewMessage_PropagatesTraceContext(t *testing.T) {
	tp := withTracing(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	msg, err := newMessage(ctx, "order-1", map[string]string{"order_id": "order-1"})
	require.NoError(t, err)

	assert.Equal(t, "order-1", string(msg.Key))
	assert.JSONEq(t, `{"order_id":"order-1"}`, string(msg.Value))
	assert.Equal(t, contentTypeJSON, Headers(msg.Headers).Get(headerContentType))
	assert.NotEmpty(t, Headers(msg.Headers).Get("traceparent"))

	extracted := extractTraceContext(context.Background(), msg)
	assert.Equal(t, span.SpanContext().TraceID(), trace.SpanContextFromContext(extracted).TraceID())
}

func TestNewMessage_EncodeError(t *testing.T) {
	_, err := newMessage(context.Background(), "k", make(chan int))
	assert.Error(t, err)
}

func testConsumer() *Consumer {
	return &Consumer{
		topic:   "order.created",
		groupID: "test",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestConsumer_Process(t *testing.T) {
	tp := withTracing(t)

	ctx, parent := tp.Tracer("test").Start(context.Background(), "publish")
	msg, err := newMessage(ctx, "k", map[string]int{"n": 1})
	require.NoError(t, err)
	parent.End()

	t.Run("continues the producer trace", func(t *testing.T) {
		var got trace.SpanContext
		var payload map[string]int

		err := testConsumer().process(context.Background(), msg, func(ctx context.Context, data []byte) error {
			got = trace.SpanContextFromContext(ctx)
			return json.Unmarshal(data, &payload)
		})

		require.NoError(t, err)
		assert.Equal(t, parent.SpanContext().TraceID(), got.TraceID())
		assert.Equal(t, 1, payload["n"])
	})

	t.Run("permanent errors are swallowed", func(t *testing.T) {
		err := testConsumer().process(context.Background(), msg, func(context.Context, []byte) error {
			return Permanent(errors.New("bad payload"))
		})
		assert.NoError(t, err)
	})

	t.Run("transient errors stop consumption", func(t *testing.T) {
		cause := errors.New("email service down")
		err := testConsumer().process(context.Background(), msg, func(context.Context, []byte) error {
			return cause
		})
		assert.ErrorIs(t, err, cause)
		assert.False(t, IsPermanent(err))
	})
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	cause := errors.New("boom")
	err := Permanent(cause)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "boom", err.Error())
}
