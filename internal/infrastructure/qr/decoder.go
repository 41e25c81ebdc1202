package qr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strconv"

	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"

	"github.com/hadir-app/hadir/internal/domain/identity"
)

// Decoder reads student ids out of image frames.
type Decoder struct {
	reader gozxing.Reader
}

var _ identity.CodeDecoder = (*Decoder)(nil)

// NewDecoder returns a QR frame decoder.
func NewDecoder() *Decoder {
	return &Decoder{reader: zxqr.NewQRCodeReader()}
}

// Decode extracts a student id from an encoded PNG or JPEG frame. A frame
// with no readable code, or a code whose payload is not a decimal id,
// reports ok=false without an error so the scan loop can keep going.
func (d *Decoder) Decode(_ context.Context, frame []byte) (int, bool, error) {
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return 0, false, fmt.Errorf("qr: decode image: %w", err)
	}

	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return 0, false, fmt.Errorf("qr: build bitmap: %w", err)
	}

	result, err := d.reader.Decode(bitmap, nil)
	if err != nil {
		// gozxing reports "no code in frame" as an error too.
		return 0, false, nil
	}

	id, err := strconv.Atoi(result.GetText())
	if err != nil {
		return 0, false, nil
	}
	return id, true, nil
}
