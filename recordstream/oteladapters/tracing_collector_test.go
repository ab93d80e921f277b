package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/recordstream-go/recordstream/oteladapters"
)

func givenTracingCollector() (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	collector, exporter := givenTracingCollector()

	ctx, spanCtx := collector.StartSpan(context.Background(), "recordstream.append", map[string]string{
		"operation":  "append",
		"value_type": "JOB",
	})
	spanCtx.AddAttribute("position", "7")
	collector.FinishSpan(spanCtx, "success", map[string]string{"index": "0"})

	assert.NotNil(t, ctx)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "recordstream.append", span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)
	assertSpanHasAttribute(t, span, "operation", "append")
	assertSpanHasAttribute(t, span, "value_type", "JOB")
	assertSpanHasAttribute(t, span, "position", "7")
	assertSpanHasAttribute(t, span, "index", "0")
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status      string
		code        codes.Code
		description string
	}{
		{status: "success", code: codes.Ok},
		{status: "ok", code: codes.Ok},
		{status: "error", code: codes.Error, description: "Operation failed"},
		{status: "cancelled", code: codes.Error, description: "Operation cancelled"},
		{status: "canceled", code: codes.Error, description: "Operation cancelled"},
		{status: "timeout", code: codes.Error, description: "Operation timed out"},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			collector, exporter := givenTracingCollector()

			_, spanCtx := collector.StartSpan(context.Background(), "op", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.code, spans[0].Status.Code)
			assert.Equal(t, tc.description, spans[0].Status.Description)
		})
	}
}

func Test_TracingCollector_UnknownStatus_IsKeptAsAttribute(t *testing.T) {
	collector, exporter := givenTracingCollector()

	_, spanCtx := collector.StartSpan(context.Background(), "op", nil)
	collector.FinishSpan(spanCtx, "exhausted", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "status", "exhausted")
}

func Test_TracingCollector_ContextPropagation(t *testing.T) {
	collector, exporter := givenTracingCollector()

	parentCtx, parent := collector.StartSpan(context.Background(), "parent", nil)
	_, child := collector.StartSpan(parentCtx, "child", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
}

func Test_TracingCollector_ForeignSpanContext_IsIgnored(t *testing.T) {
	collector, exporter := givenTracingCollector()

	assert.NotPanics(t, func() {
		collector.FinishSpan(foreignSpanContext{}, "success", nil)
	})
	assert.Empty(t, exporter.GetSpans())
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)            {}
func (foreignSpanContext) AddAttribute(string, string) {}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expectedValue string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			assert.Equal(t, expectedValue, attr.Value.AsString(), "attribute %s", key)
			return
		}
	}

	t.Errorf("span %s has no attribute %s", span.Name, key)
}
