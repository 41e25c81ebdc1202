// Package qr implements the student code ports on QR images: the encoder
// renders a student's id into a PNG at enrollment time, and the decoder reads
// an id back out of a scanned image frame.
package qr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/hadir-app/hadir/internal/domain/identity"
)

// PNG edge length in pixels.
const imageSize = 256

// Encoder writes student QR codes as PNG files.
type Encoder struct {
	// dir is where code images land, one per student.
	dir string
}

var _ identity.CodeEncoder = (*Encoder)(nil)

// NewEncoder creates the target directory if missing.
func NewEncoder(dir string) (*Encoder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("qr: create dir %s: %w", dir, err)
	}
	return &Encoder{dir: dir}, nil
}

// Encode renders the id as a QR PNG named after the student and returns the
// file path. The payload is the bare decimal id, nothing else.
func (e *Encoder) Encode(_ context.Context, id int, studentName string) (string, error) {
	path := filepath.Join(e.dir, studentName+"_QR.png")
	if err := qrcode.WriteFile(strconv.Itoa(id), qrcode.Medium, imageSize, path); err != nil {
		return "", fmt.Errorf("qr: write %s: %w", path, err)
	}
	return path, nil
}
