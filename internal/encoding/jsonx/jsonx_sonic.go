//go:build mathfastjson

package jsonx

import "github.com/bytedance/sonic"

// api matches encoding/json output, including sorted map keys.
var api = sonic.ConfigStd

func Marshal(v any) ([]byte, error)   { return api.Marshal(v) }
func Unmarshal(b []byte, v any) error { return api.Unmarshal(b, v) }

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}
