package appconfig

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-appconfig/document"
)

type serverSettings struct {
	Name     string `yaml:"name"`
	Greeting string `yaml:"greeting"`
	Nested   struct {
		Banner string `yaml:"banner"`
	} `yaml:"nested"`
}

type endpointSettings struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (s endpointSettings) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func TestDecodeResolvedKey(t *testing.T) {
	cfg := mustLoadFixture(t, "scoping.yaml")

	server, err := Decode[serverSettings](cfg, "server")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if server.Greeting != "hello api" || server.Nested.Banner != "api at example.com" {
		t.Fatalf("unexpected decoded value %+v", server)
	}

	raw, err := Decode[serverSettings](cfg, "server", DecodeRaw())
	if err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if raw.Greeting != "hello $name" {
		t.Fatalf("expected raw greeting, got %q", raw.Greeting)
	}
}

func TestDecodeWholeDocument(t *testing.T) {
	cfg := New(document.Mapping{"host": "db", "port": "${p}", "p": 5432})

	settings, err := Decode[endpointSettings](cfg, "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings.Host != "db" || settings.Port != 5432 {
		t.Fatalf("unexpected settings %+v", settings)
	}

	if _, err := Decode[endpointSettings](cfg, "", DecodeStrict()); err == nil || !strings.Contains(err.Error(), "field p not found") {
		t.Fatalf("expected strict decode to reject p, got %v", err)
	}
}

func TestDecodeFailures(t *testing.T) {
	cfg := New(document.Mapping{
		"endpoint": document.Mapping{"host": "db", "port": 0},
		"loop":     "$loop",
	})

	if _, err := Decode[endpointSettings](cfg, "absent"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if _, err := Decode[string](cfg, "loop"); !errors.Is(err, ErrCircularReference) {
		t.Fatalf("expected circular reference, got %v", err)
	}
	if _, err := Decode[endpointSettings](cfg, "endpoint"); err == nil || !strings.Contains(err.Error(), "port must be positive") {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestDecodeHookRewritesValue(t *testing.T) {
	cfg := New(document.Mapping{"endpoint": document.Mapping{"host": "DB", "port": 1}})

	var seenKey string
	settings, err := Decode[endpointSettings](cfg, "endpoint", WithDecodeHook(func(key string, value any) (any, error) {
		seenKey = key
		mapping := value.(document.Mapping)
		mapping["host"] = strings.ToLower(mapping["host"].(string))
		return mapping, nil
	}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings.Host != "db" || seenKey != "endpoint" {
		t.Fatalf("expected hook applied, got %+v key=%q", settings, seenKey)
	}
}
