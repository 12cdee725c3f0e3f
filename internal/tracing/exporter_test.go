package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec), "each line must be valid JSON")
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should be created with parent dirs")
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestNewFileExporter_AppendsToExistingFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"name":"existing"}`+"\n"), 0o600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	stub := tracetest.SpanStub{Name: "new", StartTime: time.Now(), EndTime: time.Now()}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)
	require.Equal(t, "existing", records[0].Name)
	require.Equal(t, "new", records[1].Name)
}

func TestFileExporter_WritesSpanFields(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	stub := tracetest.SpanStub{
		Name:      SpanConfigure,
		SpanKind:  trace.SpanKindInternal,
		Parent:    parent,
		StartTime: start,
		EndTime:   start.Add(1500 * time.Microsecond),
		Status:    sdktrace.Status{Code: codes.Error, Description: "validation failed"},
		Attributes: []attribute.KeyValue{
			attribute.String(AttrRequirementID, "mail"),
			attribute.Int(AttrFieldErrors, 2),
		},
		Events: []sdktrace.Event{
			{Name: EventValidated, Time: start, Attributes: []attribute.KeyValue{attribute.Bool("ok", false)}},
		},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 1)
	rec := records[0]

	require.Equal(t, SpanConfigure, rec.Name)
	require.Equal(t, "internal", rec.Kind)
	require.Equal(t, parent.SpanID().String(), rec.ParentSpanID)
	require.Equal(t, start, rec.StartTime)
	require.InDelta(t, 1.5, rec.DurationMs, 0.001)
	require.Equal(t, "ERROR", rec.Status)
	require.Equal(t, "validation failed", rec.StatusMsg)
	require.Equal(t, "mail", rec.Attributes[AttrRequirementID])
	require.InDelta(t, 2, rec.Attributes[AttrFieldErrors], 0)
	require.Len(t, rec.Events, 1)
	require.Equal(t, EventValidated, rec.Events[0].Name)
	require.Equal(t, false, rec.Events[0].Attributes["ok"])
}

func TestFileExporter_ExportEmptySpans(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
	require.NoError(t, exporter.Shutdown(context.Background()))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)
}

func TestFileExporter_ThreadSafe(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stub := tracetest.SpanStub{Name: "concurrent", StartTime: time.Now(), EndTime: time.Now()}
			_ = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
		}()
	}
	wg.Wait()
	require.NoError(t, exporter.Shutdown(context.Background()))

	require.Len(t, readRecords(t, tracePath), 10)
}

func TestFinish(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := tp.Tracer("test")

	_, ok := tracer.Start(context.Background(), "ok")
	Finish(ok, nil)
	_, bad := tracer.Start(context.Background(), "bad")
	Finish(bad, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	require.Equal(t, codes.Ok, spans[0].Status.Code)
	require.Equal(t, codes.Error, spans[1].Status.Code)
	require.Equal(t, "boom", spans[1].Status.Description)
	require.NotEmpty(t, spans[1].Events, "error should be recorded as an event")
}
