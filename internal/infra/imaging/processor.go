package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/bryanwahyu/skinai/internal/domain/media"
)

const (
	// DefaultQuality sama dengan canvas.toDataURL('image/jpeg', 0.8)
	DefaultQuality = 80
	// DefaultMaxEdge sisi terpanjang setelah downscale
	DefaultMaxEdge = 1600
	// DefaultMaxPixels batas width*height sebelum decode penuh (~40 MP)
	DefaultMaxPixels int64 = 40_000_000
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Processor validasi + normalisasi gambar jadi JPEG
type Processor struct {
	Quality   int
	MaxEdge   int
	MaxPixels int64
	Logger    *slog.Logger
}

func NewProcessor(quality, maxEdge int, logger *slog.Logger) *Processor {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Quality: quality, MaxEdge: maxEdge, MaxPixels: DefaultMaxPixels, Logger: logger}
}

// Sniff tentukan content type dari bytes, bukan dari header yang dikirim client
func Sniff(raw []byte, declaredType string) (string, error) {
	if len(raw) == 0 {
		return "", media.ErrEmpty
	}
	detected := mimetype.Detect(raw)
	ct := detected.String()
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: detected %s (declared %q)", media.ErrNotImage, ct, declaredType)
	}
	if !allowedTypes[ct] {
		return "", fmt.Errorf("%w: %s", media.ErrUnsupportedFormat, ct)
	}
	return ct, nil
}

// Process jalankan validasi ukuran, sniffing, decode, orientasi, mirror,
// downscale lalu encode ulang jadi JPEG
func (p *Processor) Process(ctx context.Context, raw []byte, declaredType string, opts media.ProcessOptions) (*media.Payload, error) {
	if len(raw) == 0 {
		return nil, media.ErrEmpty
	}
	if opts.MaxBytes > 0 && int64(len(raw)) > opts.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, max %d", media.ErrTooLarge, len(raw), opts.MaxBytes)
	}
	ct, err := Sniff(raw, declaredType)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// dimensi dicek dari header dulu, PNG kecil bisa mengaku 12000x12000
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", media.ErrNotImage, ct, err)
	}
	if err := p.checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", media.ErrNotImage, ct, err)
	}

	// downscale dulu supaya rotate/mirror jalan di gambar kecil
	img = p.fit(img)
	if ct == "image/jpeg" {
		if o := Orientation(raw); o > 1 {
			img = ApplyOrientation(img, o)
		}
	}
	if opts.Mirror {
		img = MirrorHorizontal(img)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	b := img.Bounds()
	p.Logger.Debug("image normalised",
		"source", opts.Source,
		"format", format,
		"in_bytes", len(raw),
		"out_bytes", buf.Len(),
		"width", b.Dx(),
		"height", b.Dy(),
	)
	return &media.Payload{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       b.Dx(),
		Height:      b.Dy(),
		Source:      opts.Source,
	}, nil
}

func (p *Processor) checkDimensions(w, h int) error {
	limit := p.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", media.ErrNotImage, w, h)
	}
	if px := int64(w) * int64(h); px > limit {
		return fmt.Errorf("%w: %dx%d is %d pixels, max %d", media.ErrTooLarge, w, h, px, limit)
	}
	return nil
}

// fit downscale kalau sisi terpanjang melebihi MaxEdge, aspect ratio dijaga
func (p *Processor) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= p.MaxEdge {
		return img
	}
	nw := w * p.MaxEdge / longest
	nh := h * p.MaxEdge / longest
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
