package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalerRoundTrip(t *testing.T) {
	marshaler := CreateMarshaler(CodecType_JSON)

	type payload struct {
		Name  string `json:"name"`
		Bytes []byte `json:"bytes"`
	}

	in := payload{Name: "vault", Bytes: []byte{0xde, 0xad, 0xbe, 0xef}}

	data, err := marshaler.Marshal(&in)
	assert.Equal(t, nil, err)

	var out payload
	err = marshaler.Unmarshal(data, &out)
	assert.Equal(t, nil, err)
	assert.Equal(t, in, out)
}

func TestCreateMarshalerUnknownType(t *testing.T) {
	assert.Panics(t, func() {
		CreateMarshaler(CodecType_Unknown)
	})
}
