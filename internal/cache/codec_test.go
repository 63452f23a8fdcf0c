package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := JSONCodec{}

	tests := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"plain string", "hello world", "hello world"},
		{"numeric-looking string", "42", "42"},
		{"quoted-looking string", `"hello"`, `"hello"`},
		{"boolean-looking string", "true", "true"},
		{"array-looking string", "[1,2]", "[1,2]"},
		{"empty string", "", ""},
		{"byte slice", []byte{0x00, 0x01, 0xfe}, []byte{0x00, 0x01, 0xfe}},
		{"number", 42.5, 42.5},
		{"bool", true, true},
		{"map", map[string]interface{}{"a": 1.0}, map[string]interface{}{"a": 1.0}},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := codec.Encode(tt.value)
			require.NoError(t, err)

			got, err := codec.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONCodecRejectsMalformedPayloads(t *testing.T) {
	codec := JSONCodec{}

	_, err := codec.Decode(nil)
	assert.Error(t, err)

	_, err = codec.Decode([]byte{0xff, 'x'})
	assert.Error(t, err, "unknown tag")

	_, err = codec.Decode([]byte{tagJSON, '{'})
	assert.Error(t, err, "truncated JSON")
}
