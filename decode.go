package appconfig

import (
	"fmt"

	"github.com/goliatone/go-appconfig/internal/hydrate"
)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict    bool
	noResolve bool
	hooks     []func(key string, value any) (any, error)
}

// DecodeStrict rejects mapping keys that have no matching struct field.
func DecodeStrict() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.strict = true
	}
}

// DecodeRaw decodes the unresolved value.
func DecodeRaw() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.noResolve = true
	}
}

// WithDecodeHook rewrites the resolved value before it is decoded. A nil
// result keeps the value unchanged.
func WithDecodeHook(hook func(key string, value any) (any, error)) DecodeOption {
	return func(cfg *decodeConfig) {
		if hook != nil {
			cfg.hooks = append(cfg.hooks, hook)
		}
	}
}

// Decode resolves key and decodes the result into T through its `yaml` struct
// tags. An empty key decodes the whole resolved document. When T, or *T,
// implements `Validate() error` it is called on the decoded value.
func Decode[T any](c *Config, key string, opts ...DecodeOption) (T, error) {
	var zero T
	cfg := decodeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var getOpts []GetOption
	if cfg.noResolve {
		getOpts = append(getOpts, NoResolve())
	}

	var value any
	if key == "" {
		resolved, err := c.Resolved(getOpts...)
		if err != nil {
			return zero, err
		}
		value = resolved
	} else {
		resolved, found, err := c.Get(key, getOpts...)
		if err != nil {
			return zero, err
		}
		if !found {
			return zero, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
		}
		value = resolved
	}

	decoderOpts := make([]hydrate.DecoderOption[T], 0, len(cfg.hooks)+2)
	if cfg.strict {
		decoderOpts = append(decoderOpts, hydrate.WithKnownFields[T]())
	}
	for _, hook := range cfg.hooks {
		decoderOpts = append(decoderOpts, hydrate.WithPreHook[T](func(ctx hydrate.Context, value any) (any, error) {
			return hook(ctx.Key, value)
		}))
	}
	decoderOpts = append(decoderOpts, hydrate.WithPostHook[T](func(_ hydrate.Context, value *T) error {
		return validateValue(value)
	}))

	result, err := hydrate.NewDecoder(decoderOpts...).Decode(hydrate.Context{Source: c.Source(), Key: key}, value)
	if err != nil {
		return zero, fmt.Errorf("appconfig: decode %s: %w", describeKey(key), err)
	}
	return result, nil
}

func validateValue[T any](value *T) error {
	if v, ok := any(value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func describeKey(key string) string {
	if key == "" {
		return "<root>"
	}
	return fmt.Sprintf("%q", key)
}
