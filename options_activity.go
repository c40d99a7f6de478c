package appconfig

import "github.com/goliatone/go-appconfig/pkg/activity"

// WithActivityHooks attaches activity hooks notified when a document loads and
// after every top-level lookup. Hooks are cloned and nil entries dropped to
// preserve immutability. Hook errors go to the ResolveLogger.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *configOptions) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel overrides activity.DefaultChannel on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *configOptions) {
		cfg.activityChannel = channel
	}
}

// ActivityHooks returns a cloned slice of the configured activity hooks. The
// returned slice can be safely mutated by the caller.
func (c *Config) ActivityHooks() activity.Hooks {
	if c == nil {
		return nil
	}
	return cloneActivityHooks(c.cfg.activityHooks)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
