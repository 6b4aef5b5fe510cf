package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"empty", nil, 0},
		{"single byte", []byte{1}, 1},
		{"two bytes", []byte{1, 2}, 65601},
		{"zero bytes stay zero", []byte{0, 0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identity(tt.in))
		})
	}
}

func TestIdentity_Deterministic(t *testing.T) {
	edid := make([]byte, 128)
	for i := range edid {
		edid[i] = byte(i * 7)
	}

	first := Identity(edid)
	assert.NotZero(t, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Identity(edid))
	}
}

func TestIdentity_OrderSensitive(t *testing.T) {
	assert.NotEqual(t, Identity([]byte{1, 2}), Identity([]byte{2, 1}))
}

func TestIdentity_Wraps(t *testing.T) {
	// Long all-0xff input exercises the wrapping arithmetic; it must not
	// depend on anything but the byte sequence.
	edid := make([]byte, 256)
	for i := range edid {
		edid[i] = 0xff
	}
	assert.Equal(t, Identity(edid), Identity(edid))
}
