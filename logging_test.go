package appconfig

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-appconfig/document"
	"github.com/goliatone/go-appconfig/pkg/activity"
)

func TestSlogLoggerWritesStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	cfg := New(document.Mapping{"a": "$a", "b": "ok"},
		WithResolveLogger(SlogLogger(slog.New(handler))),
		WithSourceName("inline"),
	)

	cfg.Get("b")
	cfg.Get("a")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two records, got %q", buf.String())
	}

	var ok, failed map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ok); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &failed); err != nil {
		t.Fatalf("decode record: %v", err)
	}

	if ok["level"] != "DEBUG" || ok["key"] != "b" || ok["found"] != true || ok["source"] != "inline" {
		t.Fatalf("unexpected success record %v", ok)
	}
	if failed["level"] != "WARN" || !strings.Contains(failed["error"].(string), "circular reference") {
		t.Fatalf("unexpected failure record %v", failed)
	}
}

func TestWithResolveLoggerNilFallsBackToNoop(t *testing.T) {
	cfg := New(document.Mapping{"a": 1}, WithResolveLogger(nil))
	if _, ok := cfg.resolveLogger().(noopResolveLogger); !ok {
		t.Fatalf("expected noop logger, got %T", cfg.resolveLogger())
	}
	if _, _, err := cfg.Get("a"); err != nil {
		t.Fatalf("get: %v", err)
	}
}

func TestLookupsAreObservedOnlyWithLoggerOrHooks(t *testing.T) {
	doc := document.Mapping{"a": 1}
	if New(doc).observed() {
		t.Fatalf("expected plain config to skip reporting")
	}
	if New(doc, WithResolveLogger(nil)).observed() {
		t.Fatalf("expected noop logger to skip reporting")
	}

	var events []ResolveLogEvent
	logged := New(doc, WithResolveLogger(ResolveLoggerFunc(func(event ResolveLogEvent) {
		events = append(events, event)
	})))
	if !logged.observed() {
		t.Fatalf("expected logger to enable reporting")
	}
	if _, _, err := logged.Get("a"); err != nil || len(events) != 1 || events[0].ResolutionID == "" {
		t.Fatalf("expected one event with a resolution id, got %+v (err=%v)", events, err)
	}

	hooked := New(doc, WithActivityHooks(activity.Hooks{&activity.CaptureHook{}}))
	if !hooked.observed() {
		t.Fatalf("expected activity hooks to enable reporting")
	}
}
