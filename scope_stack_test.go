package appconfig

import (
	"reflect"
	"sort"
	"testing"

	"github.com/goliatone/go-appconfig/document"
)

func TestScopeStackLookupInnermostFirst(t *testing.T) {
	stack := newScopeStack(document.Mapping{"a": "root", "b": "root", "c": "root"})
	stack.push("outer", document.Mapping{"a": "outer", "b": nil})
	stack.push("outer.inner", document.Mapping{"a": "inner"})

	cases := []struct {
		name  string
		value any
		scope string
	}{
		{name: "a", value: "inner", scope: "outer.inner"},
		{name: "b", value: "root", scope: ""},
		{name: "c", value: "root", scope: ""},
	}
	for _, tc := range cases {
		value, scope, ok := stack.lookup(tc.name)
		if !ok || value != tc.value || scope != tc.scope {
			t.Fatalf("lookup %s: got %v %q %v", tc.name, value, scope, ok)
		}
	}
	if stack.has("d") {
		t.Fatalf("expected unbound name to be absent")
	}
	if stack.depth() != 2 {
		t.Fatalf("expected depth 2, got %d", stack.depth())
	}
}

func TestScopeStackPushHidesSeenKeys(t *testing.T) {
	stack := newScopeStack(document.Mapping{"a": 1, "b": 2})
	if !stack.enter("a") || !stack.enter("b") {
		t.Fatalf("expected first entry to succeed")
	}
	if stack.enter("a") {
		t.Fatalf("expected re-entry to be refused")
	}

	hidden := stack.push("child", document.Mapping{"a": 3, "b": 4, "c": 5})
	sort.Strings(hidden)
	if !reflect.DeepEqual(hidden, []string{"a", "b"}) {
		t.Fatalf("unexpected hidden keys %v", hidden)
	}
	if !stack.enter("a") {
		t.Fatalf("expected hidden key to be enterable inside the new scope")
	}
	stack.leave("a")

	stack.pop(hidden)
	if stack.enter("a") || stack.enter("b") {
		t.Fatalf("expected hidden keys restored after pop")
	}
	if stack.depth() != 0 {
		t.Fatalf("expected only the root frame, got depth %d", stack.depth())
	}
}

func TestScopeStackPushSkipsNilBindings(t *testing.T) {
	stack := newScopeStack(document.Mapping{"a": 1})
	stack.enter("a")

	hidden := stack.push("child", document.Mapping{"a": nil, "b": 2})
	if len(hidden) != 0 {
		t.Fatalf("expected nil binding not to hide anything, got %v", hidden)
	}
	if stack.enter("a") {
		t.Fatalf("expected a to stay marked while its nil rebinding is in scope")
	}
	stack.pop(hidden)
}

func TestScopeStackNeverPopsRoot(t *testing.T) {
	stack := newScopeStack(document.Mapping{"a": 1})
	stack.pop(nil)
	stack.pop(nil)
	if value, _, ok := stack.lookup("a"); !ok || value != 1 {
		t.Fatalf("expected root frame to remain, got %v %v", value, ok)
	}
}
