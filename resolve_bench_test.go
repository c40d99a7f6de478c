package appconfig

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-appconfig/document"
)

func benchmarkDocument() document.Mapping {
	root := document.Mapping{"host": "example.com", "port": 8080}
	current := root
	for i := 0; i < 10; i++ {
		next := document.Mapping{
			"name": fmt.Sprintf("level_%d", i),
			"url":  "http://${host}:$port/$name",
		}
		current[fmt.Sprintf("level_%d", i)] = next
		current = next
	}
	return root
}

func BenchmarkGetNested(b *testing.B) {
	cfg := New(benchmarkDocument())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := cfg.Get("level_0"); err != nil {
			b.Fatalf("get: %v", err)
		}
	}
}

func BenchmarkResolveWithTrace(b *testing.B) {
	cfg := New(benchmarkDocument())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := cfg.ResolveWithTrace("level_0"); err != nil {
			b.Fatalf("resolve: %v", err)
		}
	}
}
