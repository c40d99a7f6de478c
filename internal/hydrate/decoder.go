package hydrate

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-appconfig/layering"
)

// Context identifies the resolved value being decoded.
type Context struct {
	Source string
	Key    string
}

func (c Context) label() string {
	if c.Key == "" {
		return "<root>"
	}
	return c.Key
}

// PreHook lets callers mutate or normalise the resolved value before decoding.
type PreHook func(Context, any) (any, error)

// PostHook lets callers adjust or validate the hydrated value after decoding.
type PostHook[T any] func(Context, *T) error

// CustomDecoder replaces the default YAML decoding when provided.
type CustomDecoder[T any] func(Context, any) (T, error)

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts resolved configuration values into typed Go values using
// their `yaml` struct tags.
type Decoder[T any] struct {
	preHooks    []PreHook
	postHooks   []PostHook[T]
	knownFields bool
	custom      CustomDecoder[T]
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithKnownFields rejects mapping keys that have no matching struct field.
func WithKnownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.knownFields = true
	}
}

// WithCustomDecoder replaces the default YAML decoding path.
func WithCustomDecoder[T any](decoder CustomDecoder[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.custom = decoder
	}
}

func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts value into T applying configured hooks. value is deep
// copied first so hooks may mutate it freely.
func (d *Decoder[T]) Decode(ctx Context, value any) (T, error) {
	var zero T

	current := layering.Clone(value)
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: pre-hook for %s failed: %w", ctx.label(), err)
		}
		if next != nil {
			current = next
		}
	}

	var result T
	if d.custom != nil {
		decoded, err := d.custom(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: custom decoder for %s failed: %w", ctx.label(), err)
		}
		result = decoded
	} else {
		buffer, err := yaml.Marshal(current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: marshal %s: %w", ctx.label(), err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(buffer))
		decoder.KnownFields(d.knownFields)
		if err := decoder.Decode(&result); err != nil {
			return zero, fmt.Errorf("hydrate: decode %s: %w", ctx.label(), err)
		}
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("hydrate: post-hook for %s failed: %w", ctx.label(), err)
		}
	}

	return result, nil
}
