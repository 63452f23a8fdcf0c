package cache

import (
	"encoding/json"
	"fmt"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/errors"
)

// Wire tags, written as the first byte of every stored payload. The tag makes
// the format self-describing: Decode replays exactly what Encode wrote and
// never has to guess, so a cached string that happens to look like JSON
// (e.g. "42" or "true") still comes back as that exact string.
const (
	tagString byte = 's'
	tagBytes  byte = 'b'
	tagJSON   byte = 'j'
)

// Codec converts cache values to and from the remote tier's wire form. The
// wire format is an implementation detail of the tier: values only ever come
// back from this service's own writes.
type Codec interface {
	Encode(value interface{}) ([]byte, error)
	Decode(data []byte) (interface{}, error)
}

// JSONCodec stores strings and byte slices verbatim after a one-byte type
// tag, and everything else as tagged JSON. Decode recovers JSON values
// generically; callers needing a concrete type re-shape the result (see
// decodeAs in cacheable.go).
type JSONCodec struct{}

// Encode implements Codec.
func (JSONCodec) Encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return append([]byte{tagBytes}, v...), nil
	case string:
		return append([]byte{tagString}, v...), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, errors.NewSerializationError(err)
		}
		return append([]byte{tagJSON}, data...), nil
	}
}

// Decode implements Codec.
func (JSONCodec) Decode(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, errors.NewSerializationError(fmt.Errorf("empty payload"))
	}

	payload := data[1:]
	switch data[0] {
	case tagString:
		return string(payload), nil
	case tagBytes:
		return payload, nil
	case tagJSON:
		var value interface{}
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, errors.NewSerializationError(err)
		}
		return value, nil
	default:
		return nil, errors.NewSerializationError(fmt.Errorf("unknown payload tag %#x", data[0]))
	}
}
