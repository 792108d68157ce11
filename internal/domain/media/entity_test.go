package media

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadValid(t *testing.T) {
	var nilPayload *Payload
	assert.False(t, nilPayload.Valid())
	assert.False(t, (&Payload{ContentType: "image/jpeg", Width: 1, Height: 1}).Valid())
	assert.True(t, (&Payload{Data: []byte{1}, ContentType: "image/jpeg", Width: 1, Height: 1}).Valid())
}

func TestDataURL(t *testing.T) {
	p := &Payload{Data: []byte("hi"), ContentType: "image/jpeg"}
	assert.Equal(t, "data:image/jpeg;base64,aGk=", p.DataURL())
}

func TestEncodedSize(t *testing.T) {
	assert.InDelta(t, 3.0, EncodedKB(strings.Repeat("A", 4096)), 0.0001)

	small := &Payload{Data: bytes.Repeat([]byte{1}, 1024)}
	assert.NoError(t, small.CheckEncodedSize())

	big := &Payload{Data: bytes.Repeat([]byte{1}, (MaxEncodedKB+10)*1024)}
	assert.ErrorIs(t, big.CheckEncodedSize(), ErrTooLarge)
}
