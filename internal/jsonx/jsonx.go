// internal/jsonx/jsonx.go
package jsonx

import (
	stdjson "encoding/json"

	"github.com/bytedance/sonic"
)

// codec sorts map keys so spread payloads encode deterministically.
var codec = sonic.ConfigStd

// RawMessage is kept as an alias so callers can hold undecoded fields
// without importing encoding/json.
type RawMessage = stdjson.RawMessage

func Marshal(v any) ([]byte, error) {
	return codec.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return codec.Unmarshal(data, v)
}
