package media

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// DefaultMaxUploadBytes batas ukuran file yang diterima sebelum diproses
const DefaultMaxUploadBytes int64 = 10 << 20

// MaxEncodedKB batas ukuran gambar setelah di-encode base64 (batas provider AI)
const MaxEncodedKB = 5000

var (
	ErrEmpty             = errors.New("image is empty")
	ErrNotImage          = errors.New("file is not an image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image size too large, please use a smaller image")
)

// Source dari mana payload berasal
type Source string

const (
	SourceCamera Source = "camera"
	SourceUpload Source = "upload"
)

// Payload satu gambar still yang sudah dinormalisasi (JPEG)
type Payload struct {
	Data        []byte `json:"-"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Source      Source `json:"source"`
}

// Valid true kalau payload punya bytes dan dimensi
func (p *Payload) Valid() bool {
	return p != nil && len(p.Data) > 0 && p.ContentType != "" && p.Width > 0 && p.Height > 0
}

// Base64 encode data tanpa prefix data URL
func (p *Payload) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

// DataURL format yang dipakai di pesan multimodal
func (p *Payload) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", p.ContentType, p.Base64())
}

// EncodedKB estimasi ukuran base64 dalam KB, sama seperti (len*3)/4/1024
func EncodedKB(b64 string) float64 {
	return float64(len(b64)) * 3 / 4 / 1024
}

// CheckEncodedSize menolak payload yang melebihi MaxEncodedKB
func (p *Payload) CheckEncodedSize() error {
	if EncodedKB(p.Base64()) > MaxEncodedKB {
		return ErrTooLarge
	}
	return nil
}
