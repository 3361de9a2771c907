package qrcode_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neodocs/neodocs/pkg/qrcode"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestEncodePNG(t *testing.T) {
	enc := qrcode.NewEncoder(0)

	raw, err := enc.EncodePNG("731928410273415168")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, pngMagic))

	_, err = enc.EncodePNG("  ")
	assert.Error(t, err)
}
