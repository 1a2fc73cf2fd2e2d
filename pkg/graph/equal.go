package graph

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// DataEqual reports whether two node payloads are equal.
//
// Two nil payloads are equal; nil never equals a non-nil payload. Numbers
// compare by value whatever their Go type or JSON spelling, so int 1,
// float64 1, json.Number "1" and json.Number "1.0" are all equal, as are
// json.Number "1e2" and 100. This holds inside maps and slices too. Maps
// with the same entries are equal regardless of insertion order. Other
// values compare by their JSON encoding, falling back to reflect.DeepEqual
// for values that cannot be encoded.
func DataEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	a, b = normalizeNumbers(a), normalizeNumbers(b)

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && isPrimitive(ta.Kind()) {
		return a == b
	}

	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ja, jb)
}

// normalizeNumbers replaces every json.Number in v, including those nested
// in decoded objects and arrays, with an int64 when it is an exact integer
// and a float64 otherwise. Both encode to the shortest form of their value,
// so differently spelled equal numbers encode identically. A number that
// fits neither is left as it is.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, err := x.Float64()
		if err != nil {
			return x
		}
		// 1.0 and 1e2 fail Int64 but are integers; keep them comparable
		// with int64 values beyond float64's exact range.
		if f >= -(1<<63) && f < 1<<63 && f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeNumbers(e)
		}
		return out
	}
	return v
}

func isPrimitive(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
