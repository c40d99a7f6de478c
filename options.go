package appconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-appconfig/document"
	"github.com/goliatone/go-appconfig/layering"
	"github.com/goliatone/go-appconfig/pkg/activity"
)

// New wraps an in-memory document. The tree is normalised and deep copied so
// later changes to doc do not leak into the Config.
func New(doc document.Mapping, opts ...Option) *Config {
	cfg := applyOptions(opts)
	return newConfig(document.NormalizeMapping(doc), nil, cfg)
}

// Load parses a single document from r. r is closed when it implements
// io.Closer, whether or not parsing succeeds.
func Load(r io.Reader, opts ...Option) (*Config, error) {
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}
	cfg := applyOptions(opts)
	doc, format, err := parseDocument(r, cfg)
	if err != nil {
		return nil, err
	}
	c := newConfig(document.NormalizeMapping(doc.Root), doc.Order, cfg)
	c.emitLoaded(format)
	return c, nil
}

// LoadFile reads and parses the document at path. The format comes from
// WithFormat or the file extension; the path becomes the source name unless
// WithSourceName is given.
func LoadFile(path string, opts ...Option) (*Config, error) {
	cfg := applyOptions(opts)
	if cfg.source == "" {
		cfg.source = path
	}
	doc, format, err := readFile(path, cfg)
	if err != nil {
		return nil, err
	}
	c := newConfig(document.NormalizeMapping(doc.Root), doc.Order, cfg)
	c.emitLoaded(format)
	return c, nil
}

// LoadFiles reads every path and merges the documents; later files override
// earlier ones key by key, nested mappings merging recursively.
func LoadFiles(paths []string, opts ...Option) (*Config, error) {
	cfg := applyOptions(opts)
	if cfg.source == "" {
		cfg.source = strings.Join(paths, ",")
	}

	layers := make([]map[string]any, len(paths))
	var order []string
	var format document.Format
	for i, path := range paths {
		fileCfg := cfg
		fileCfg.source = path
		doc, fileFormat, err := readFile(path, fileCfg)
		if err != nil {
			return nil, err
		}
		layers[len(paths)-1-i] = document.NormalizeMapping(doc.Root)
		order = append(order, doc.Order...)
		format = fileFormat
	}

	c := newConfig(document.NormalizeMapping(layering.MergeLayers(layers...)), order, cfg)
	c.emitLoaded(format)
	return c, nil
}

func readFile(path string, cfg configOptions) (*document.Document, document.Format, error) {
	if cfg.format == "" && cfg.parser == nil {
		cfg.format = document.FormatFromPath(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, cfg.format, wrapParseError(cfg.source, cfg.format, err)
	}
	defer file.Close()
	return parseDocument(file, cfg)
}

func parseDocument(r io.Reader, cfg configOptions) (*document.Document, document.Format, error) {
	parser, format, err := cfg.resolveParser()
	if err != nil {
		return nil, format, wrapParseError(cfg.source, format, err)
	}
	if r == nil {
		return nil, format, wrapParseError(cfg.source, format, errors.New("reader is nil"))
	}
	doc, err := parser.Parse(r)
	if err != nil {
		return nil, format, wrapParseError(cfg.source, format, err)
	}
	if doc == nil {
		doc = &document.Document{}
	}
	return doc, format, nil
}

func (cfg configOptions) resolveParser() (document.Parser, document.Format, error) {
	if cfg.parser != nil {
		return cfg.parser, cfg.format, nil
	}
	format := cfg.format
	if format == "" {
		format = document.FormatYAML
	}
	parser, err := document.ParserFor(format)
	if err != nil {
		return nil, format, err
	}
	return parser, format, nil
}

func newConfig(root document.Mapping, order []string, cfg configOptions) *Config {
	if root == nil {
		root = document.Mapping{}
	}
	return &Config{
		root: root,
		keys: orderedKeys(root, order),
		cfg:  cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, activity.Config{
			Enabled: true,
			Channel: cfg.activityChannel,
			Source:  cfg.source,
		}),
	}
}

// orderedKeys lists the keys of root following order first, then the
// remaining keys sorted.
func orderedKeys(root document.Mapping, order []string) []string {
	keys := make([]string, 0, len(root))
	seen := make(map[string]struct{}, len(root))
	for _, key := range order {
		if _, ok := root[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	rest := make([]string, 0, len(root)-len(keys))
	for key := range root {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Document returns a deep copy of the raw, unresolved document.
func (c *Config) Document() document.Mapping {
	if c == nil {
		return document.Mapping{}
	}
	return layering.CloneMapping(c.root)
}

// Keys iterates over the top-level keys in document order when the parser
// recorded it, remaining keys sorted. The sequence can be ranged any number
// of times.
func (c *Config) Keys() iter.Seq[string] {
	var keys []string
	if c != nil {
		keys = slices.Clone(c.keys)
	}
	return func(yield func(string) bool) {
		for _, key := range keys {
			if !yield(key) {
				return
			}
		}
	}
}

// Resolved resolves every top-level key. Keys that fail are left out of the
// result and their errors joined.
func (c *Config) Resolved(opts ...GetOption) (document.Mapping, error) {
	out := document.Mapping{}
	if c == nil {
		return out, nil
	}
	var errs []error
	for _, key := range c.keys {
		value, found, err := c.Get(key, opts...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if found {
			out[key] = value
		}
	}
	return out, errors.Join(errs...)
}

// Dump writes the raw document in format.
func (c *Config) Dump(w io.Writer, format document.Format) error {
	if err := document.Encode(w, format, c.Document()); err != nil {
		return fmt.Errorf("appconfig: dump %s: %w", format, err)
	}
	return nil
}

func (c *Config) emitLoaded(format document.Format) {
	if !c.emitter.Enabled() {
		return
	}
	event := activity.BuildDocumentLoadedEvent(activity.DocumentEventInput{
		Source:    c.cfg.source,
		Format:    string(format),
		Keys:      len(c.keys),
		NoResolve: c.cfg.noResolve,
	})
	c.emit(OpLoad, "", event)
}

func (c *Config) emit(op, key string, event activity.Event) {
	if err := c.emitter.Emit(context.Background(), event); err != nil {
		c.resolveLogger().LogResolution(ResolveLogEvent{
			Op:      op,
			Source:  c.cfg.source,
			Key:     key,
			HookErr: err,
		})
	}
}
