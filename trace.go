package appconfig

import (
	"encoding/json"
)

// Trace records every variable reference met while resolving a top-level key.
type Trace struct {
	Key        string      `json:"key"`
	Found      bool        `json:"found"`
	NoResolve  bool        `json:"no_resolve,omitempty"`
	References []Reference `json:"references"`
}

// Reference describes one `$name` occurrence. From is the path of the value
// holding it, Scope the path of the mapping that supplied the binding (empty
// for the document root) and Depth the number of enclosing mappings above the
// root at the point of use.
type Reference struct {
	Name  string `json:"name"`
	From  string `json:"from"`
	Scope string `json:"scope,omitempty"`
	Depth int    `json:"depth"`
	Found bool   `json:"found"`
}

// ResolveWithTrace behaves like Get and also returns the references met, in
// the order they were resolved. The trace is returned even when resolution
// fails, ending at the failing reference.
func (c *Config) ResolveWithTrace(key string, opts ...GetOption) (any, Trace, error) {
	trace := Trace{References: []Reference{}}
	value, _, err := c.lookup(key, applyGetOptions(opts), &trace)
	return value, trace, err
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
