package layering

// Clone returns a deep copy of a document value. Mappings and sequences are
// rebuilt; scalars are returned as is since they are immutable values.
func Clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return CloneMapping(v)
	case []any:
		if v == nil {
			return []any(nil)
		}
		out := make([]any, len(v))
		for i := range v {
			out[i] = Clone(v[i])
		}
		return out
	case []byte:
		if v == nil {
			return []byte(nil)
		}
		return append([]byte{}, v...)
	default:
		return value
	}
}

// CloneMapping deep copies a mapping. A nil mapping stays nil.
func CloneMapping(mapping map[string]any) map[string]any {
	if mapping == nil {
		return nil
	}
	out := make(map[string]any, len(mapping))
	for key, value := range mapping {
		out[key] = Clone(value)
	}
	return out
}
