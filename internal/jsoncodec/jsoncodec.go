// Package jsoncodec wraps the sonic JSON implementation behind a small
// stdlib-compatible surface so callers never import sonic directly.
package jsoncodec

import "github.com/bytedance/sonic"

// api uses sonic's stdlib-compatible configuration. Sorted map keys keep
// rendered configuration dumps stable across runs.
var api = sonic.Config{
	EscapeHTML:       true,
	SortMapKeys:      true,
	CompactMarshaler: true,
}.Froze()

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}
