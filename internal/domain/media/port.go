package media

import "context"

// ProcessOptions opsi normalisasi gambar
type ProcessOptions struct {
	Mirror   bool
	MaxBytes int64
	Source   Source
}

// Processor port untuk validasi dan normalisasi gambar masuk
type Processor interface {
	Process(ctx context.Context, raw []byte, declaredType string, opts ProcessOptions) (*Payload, error)
}
