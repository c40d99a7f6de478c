// Package appconfig resolves `$name` and `${name}` references inside
// configuration documents.
//
// A Config wraps a parsed tree of mappings, sequences and scalars. Get returns
// a resolved deep copy of a top-level value: every string scalar is split into
// literal text and references, and each reference is looked up through the
// stack of mappings enclosing the value, innermost first, with the document
// root as the global scope. A key bound in a nested mapping therefore shadows
// the same key at the top level for everything inside that mapping.
//
// A reference that resolves to a single value keeps that value's type, so
// `ref: "$count"` with `count: 5` yields the integer 5. References to unbound
// names are left as written, and `\$name` produces the literal text `$name`.
// Keys that depend on themselves fail with *CircularReferenceError without
// affecting other lookups.
//
// A Config is immutable after construction and safe for concurrent use.
package appconfig

import (
	"github.com/goliatone/go-appconfig/document"
	"github.com/goliatone/go-appconfig/pkg/activity"
)

// Config holds an immutable configuration document.
type Config struct {
	root    document.Mapping
	keys    []string
	cfg     configOptions
	emitter *activity.Emitter
}

// Option configures Config construction.
type Option func(*configOptions)

type configOptions struct {
	noResolve       bool
	format          document.Format
	parser          document.Parser
	source          string
	logger          ResolveLogger
	activityHooks   activity.Hooks
	activityChannel string
}

func applyOptions(opts []Option) configOptions {
	cfg := configOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithNoResolve disables variable resolution for every lookup: Get returns
// raw stored values.
func WithNoResolve(disabled bool) Option {
	return func(cfg *configOptions) {
		cfg.noResolve = disabled
	}
}

// WithFormat selects the built-in parser used by Load and LoadFile. LoadFile
// otherwise infers it from the file extension; YAML is the fallback.
func WithFormat(format document.Format) Option {
	return func(cfg *configOptions) {
		cfg.format = format
	}
}

// WithParser replaces the built-in parsers.
func WithParser(parser document.Parser) Option {
	return func(cfg *configOptions) {
		cfg.parser = parser
	}
}

// WithSourceName labels the document in errors, logs and activity events.
func WithSourceName(name string) Option {
	return func(cfg *configOptions) {
		cfg.source = name
	}
}

// GetOption configures a single lookup.
type GetOption func(*getConfig)

type getConfig struct {
	noResolve bool
}

// NoResolve returns the raw stored value for this lookup only.
func NoResolve() GetOption {
	return func(cfg *getConfig) {
		cfg.noResolve = true
	}
}

func applyGetOptions(opts []GetOption) getConfig {
	cfg := getConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Source returns the name given through WithSourceName or the loaded path.
func (c *Config) Source() string {
	if c == nil {
		return ""
	}
	return c.cfg.source
}

// NoResolve reports whether resolution is disabled for the whole Config.
func (c *Config) NoResolve() bool {
	return c != nil && c.cfg.noResolve
}

// Len returns the number of top-level keys.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}
