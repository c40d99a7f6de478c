package activity

import (
	"strings"
	"time"
)

const (
	VerbDocumentLoaded    = "appconfig.document.loaded"
	VerbKeyResolved       = "appconfig.key.resolved"
	VerbCircularReference = "appconfig.key.circular_reference"

	ObjectTypeDocument = "appconfig.document"
	ObjectTypeKey      = "appconfig.key"
)

// DocumentEventInput describes a configuration document that was loaded.
type DocumentEventInput struct {
	Source     string
	Format     string
	Keys       int
	NoResolve  bool
	Metadata   map[string]any
	OccurredAt time.Time
}

// KeyEventInput describes one top-level lookup.
type KeyEventInput struct {
	Source       string
	Key          string
	ResolutionID string
	Found        bool
	NoResolve    bool
	Duration     time.Duration
	// Chain lists the keys that led back to Key for circular references.
	Chain      []string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildDocumentLoadedEvent constructs an activity event for a parsed document.
func BuildDocumentLoadedEvent(input DocumentEventInput) Event {
	metadata := cloneMap(input.Metadata)
	metadata = ensureMetadata(metadata)
	metadata["keys"] = input.Keys
	metadata["no_resolve"] = input.NoResolve
	if input.Format != "" {
		metadata["format"] = input.Format
	}

	objectID := strings.TrimSpace(input.Source)
	if objectID == "" {
		objectID = ObjectTypeDocument
	}
	return Event{
		Verb:       VerbDocumentLoaded,
		ObjectType: ObjectTypeDocument,
		ObjectID:   objectID,
		Source:     strings.TrimSpace(input.Source),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

// BuildKeyResolvedEvent constructs an activity event for a completed lookup,
// whether or not the key was found.
func BuildKeyResolvedEvent(input KeyEventInput) Event {
	return buildKeyEvent(VerbKeyResolved, input)
}

// BuildCircularReferenceEvent constructs an activity event for a lookup that
// failed because the key refers back to itself.
func BuildCircularReferenceEvent(input KeyEventInput) Event {
	event := buildKeyEvent(VerbCircularReference, input)
	if len(input.Chain) > 0 {
		event.Metadata["chain"] = append([]string{}, input.Chain...)
	}
	return event
}

func buildKeyEvent(verb string, input KeyEventInput) Event {
	metadata := ensureMetadata(cloneMap(input.Metadata))
	metadata["found"] = input.Found
	metadata["no_resolve"] = input.NoResolve
	if input.ResolutionID != "" {
		metadata["resolution_id"] = input.ResolutionID
	}
	if input.Duration > 0 {
		metadata["duration_ms"] = float64(input.Duration) / float64(time.Millisecond)
	}

	return Event{
		Verb:       verb,
		ObjectType: ObjectTypeKey,
		ObjectID:   strings.TrimSpace(input.Key),
		Source:     strings.TrimSpace(input.Source),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
