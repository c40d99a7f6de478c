package appconfig

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-appconfig/document"
	"github.com/goliatone/go-appconfig/internal/lexer"
	"github.com/goliatone/go-appconfig/layering"
	"github.com/goliatone/go-appconfig/pkg/activity"
)

// resolution carries the state of one top-level lookup.
type resolution struct {
	scopes *scopeStack
	chain  []string
	trace  *Trace
}

// Get returns the resolved value bound to key at the top level of the
// document. found is false, with a nil error, when key is unbound or bound to
// nil. found stays true when resolution fails.
func (c *Config) Get(key string, opts ...GetOption) (any, bool, error) {
	return c.lookup(key, applyGetOptions(opts), nil)
}

func (c *Config) lookup(key string, call getConfig, trace *Trace) (any, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	start := time.Now()
	noResolve := c.cfg.noResolve || call.noResolve

	var (
		value any
		found bool
		err   error
	)
	r := &resolution{scopes: newScopeStack(c.root), trace: trace}
	if raw, ok := c.root[key]; ok && raw != nil {
		found = true
		if noResolve {
			value = layering.Clone(raw)
		} else {
			value, _, err = r.get(key)
		}
	}
	if trace != nil {
		trace.Key = key
		trace.Found = found
		trace.NoResolve = noResolve
	}

	if !c.observed() {
		if err != nil {
			return nil, found, err
		}
		return value, found, nil
	}

	id := uuid.NewString()
	duration := time.Since(start)
	c.resolveLogger().LogResolution(ResolveLogEvent{
		Op:           OpGet,
		Source:       c.cfg.source,
		Key:          key,
		ResolutionID: id,
		Found:        found,
		NoResolve:    noResolve,
		Duration:     duration,
		Err:          err,
	})
	if c.emitter.Enabled() {
		input := activity.KeyEventInput{
			Source:       c.cfg.source,
			Key:          key,
			ResolutionID: id,
			Found:        found,
			NoResolve:    noResolve,
			Duration:     duration,
		}
		var circular *CircularReferenceError
		if errors.As(err, &circular) {
			input.Chain = circular.Chain
			c.emit(OpGet, key, activity.BuildCircularReferenceEvent(input))
		} else {
			c.emit(OpGet, key, activity.BuildKeyResolvedEvent(input))
		}
	}

	if err != nil {
		return nil, found, err
	}
	return value, found, nil
}

// observed reports whether lookups are reported to a logger or activity hooks.
func (c *Config) observed() bool {
	if c.emitter.Enabled() {
		return true
	}
	_, noop := c.resolveLogger().(noopResolveLogger)
	return !noop
}

// get resolves the binding of key visible from the current scope.
func (r *resolution) get(key string) (any, bool, error) {
	value, scope, ok := r.scopes.lookup(key)
	if !ok {
		return nil, false, nil
	}
	if !r.scopes.enter(key) {
		chain := append(append([]string{}, r.chain...), key)
		return nil, true, &CircularReferenceError{Key: key, Chain: chain}
	}
	r.chain = append(r.chain, key)
	resolved, err := r.resolve(value, joinPath(scope, key))
	r.chain = r.chain[:len(r.chain)-1]
	r.scopes.leave(key)
	if err != nil {
		return nil, true, err
	}
	return resolved, true, nil
}

// resolve builds a resolved copy of value. Mappings are pushed as scope frames
// while their values resolve; keys are visited in sorted order.
func (r *resolution) resolve(value any, path string) (any, error) {
	switch v := value.(type) {
	case document.Mapping:
		hidden := r.scopes.push(path, v)
		defer r.scopes.pop(hidden)

		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := make(document.Mapping, len(v))
		for _, key := range keys {
			resolved, err := r.resolve(v[key], joinPath(path, key))
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case document.Sequence:
		out := make(document.Sequence, len(v))
		for i, item := range v {
			resolved, err := r.resolve(item, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case string:
		return r.resolveScalar(v, path)
	default:
		return layering.Clone(v), nil
	}
}

// resolveScalar substitutes the references in a string. A scalar made of a
// single segment yields that segment's value unchanged, whatever its type;
// otherwise segments are joined as text.
func (r *resolution) resolveScalar(value, path string) (any, error) {
	tokens := lexer.Split(value)
	if len(tokens) == 0 {
		return value, nil
	}

	segments := make([]any, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind == lexer.Literal {
			segments = append(segments, lexer.Unescape(token.Text))
			continue
		}
		resolved, found, err := r.reference(token.Name, path)
		if err != nil {
			return nil, err
		}
		if !found {
			segments = append(segments, token.Text)
			continue
		}
		segments = append(segments, resolved)
	}

	if len(segments) == 1 {
		return segments[0], nil
	}
	var b strings.Builder
	for _, segment := range segments {
		switch s := segment.(type) {
		case nil:
		case string:
			b.WriteString(s)
		default:
			b.WriteString(fmt.Sprint(s))
		}
	}
	return b.String(), nil
}

// reference resolves a variable met in the value at path.
func (r *resolution) reference(name, path string) (any, bool, error) {
	if r.trace != nil {
		_, scope, ok := r.scopes.lookup(name)
		r.trace.References = append(r.trace.References, Reference{
			Name:  name,
			From:  path,
			Scope: scope,
			Depth: r.scopes.depth(),
			Found: ok,
		})
	}
	if !r.scopes.has(name) {
		return nil, false, nil
	}
	return r.get(name)
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
