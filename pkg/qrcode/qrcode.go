package qrcode

import (
	"fmt"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const defaultSize = 512

// Encoder 将分享载荷渲染为 PNG 二维码
type Encoder struct {
	size int
}

func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = defaultSize
	}
	return &Encoder{size: size}
}

// EncodePNG renders the payload into a PNG image. Medium error
// correction is enough for on-screen scanning.
func (e *Encoder) EncodePNG(payload string) ([]byte, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("empty qrcode payload")
	}
	raw, err := qr.Encode(payload, qr.Medium, e.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qrcode: %w", err)
	}
	return raw, nil
}
