package document

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Normalize converts decoder specific containers into the canonical tree:
// every mapping becomes Mapping (non-string keys are formatted with
// fmt.Sprint), every slice or array other than []byte becomes Sequence and
// json.Number becomes int64 or float64. Scalars are returned unchanged. The
// result never shares a container with value.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case Mapping:
		out := make(Mapping, len(v))
		for key, item := range v {
			out[key] = Normalize(item)
		}
		return out
	case Sequence:
		out := make(Sequence, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(Mapping, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = Normalize(item)
		}
		return out
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case string, bool, int, int64, uint64, float64, []byte:
		return v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Map:
		out := make(Mapping, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Sequence(nil)
		}
		out := make(Sequence, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return value
	}
}

// NormalizeMapping normalizes every value of mapping into a new Mapping.
func NormalizeMapping(mapping map[string]any) Mapping {
	if mapping == nil {
		return Mapping{}
	}
	return Normalize(Mapping(mapping)).(Mapping)
}

func mapKey(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}
	return fmt.Sprint(key.Interface())
}
