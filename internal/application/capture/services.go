package capture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/skinai/internal/application"
	domain "github.com/bryanwahyu/skinai/internal/domain/capture"
	"github.com/bryanwahyu/skinai/internal/domain/media"
)

// Service implements use-cases untuk capture flow.
// Semua transisi untuk satu flow diserialisasi oleh Repository.Update.
type Service struct {
	Repo      domain.Repository
	Images    media.Processor
	Clock     application.Clock
	MaxUpload int64
	Logger    *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Service) maxUpload() int64 {
	if s.MaxUpload <= 0 {
		return media.DefaultMaxUploadBytes
	}
	return s.MaxUpload
}

// Start buat flow baru di state idle
func (s *Service) Start(ctx context.Context) (*domain.Flow, error) {
	f := domain.NewFlow(domain.FlowID(uuid.New().String()), s.Clock.Now())
	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Get ambil 1 flow by id
func (s *Service) Get(ctx context.Context, id domain.FlowID) (*domain.Flow, error) {
	return s.Repo.Get(ctx, id)
}

// SelectMethod camera atau upload
func (s *Service) SelectMethod(ctx context.Context, id domain.FlowID, m domain.Method) (*domain.Flow, error) {
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error {
		return f.SelectMethod(m, s.Clock.Now())
	})
}

// Permission hasil permintaan izin kamera dari browser
func (s *Service) Permission(ctx context.Context, id domain.FlowID, granted bool) (*domain.Flow, error) {
	f, err := s.Repo.Update(ctx, id, func(f *domain.Flow) error {
		return f.PermissionResult(granted, s.Clock.Now())
	})
	if err == nil && !granted {
		s.logger().Info("camera permission denied", "flow_id", id)
	}
	return f, err
}

// Capture terima frame kamera. Gambar diproses sebelum flow disentuh,
// jadi frame yang ditolak tidak mengubah state.
func (s *Service) Capture(ctx context.Context, id domain.FlowID, raw []byte, contentType string, mirror bool) (*domain.Flow, error) {
	f, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.State != domain.StateLivePreview {
		return nil, invalid("capture", f)
	}
	p, err := s.Images.Process(ctx, raw, contentType, media.ProcessOptions{
		Mirror:   mirror,
		MaxBytes: s.maxUpload(),
		Source:   media.SourceCamera,
	})
	if err != nil {
		s.logger().Warn("capture rejected", "flow_id", id, "error", err)
		return nil, err
	}
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error {
		return f.Capture(p, s.Clock.Now())
	})
}

// Upload terima file dari file picker. File yang ditolak tidak mengubah state.
func (s *Service) Upload(ctx context.Context, id domain.FlowID, raw []byte, contentType string) (*domain.Flow, error) {
	f, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	replacing := f.State == domain.StateCaptured && f.Method == domain.MethodUpload
	if f.State != domain.StateUploadSelected && !replacing {
		return nil, invalid("upload", f)
	}
	p, err := s.Images.Process(ctx, raw, contentType, media.ProcessOptions{
		MaxBytes: s.maxUpload(),
		Source:   media.SourceUpload,
	})
	if err != nil {
		s.logger().Warn("upload rejected", "flow_id", id, "error", err)
		return nil, err
	}
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error {
		return f.Upload(p, s.Clock.Now())
	})
}

// Retake buang foto dan minta kamera lagi
func (s *Service) Retake(ctx context.Context, id domain.FlowID) (*domain.Flow, error) {
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error { return f.Retake(s.Clock.Now()) })
}

// ChooseDifferent buang file upload
func (s *Service) ChooseDifferent(ctx context.Context, id domain.FlowID) (*domain.Flow, error) {
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error { return f.ChooseDifferent(s.Clock.Now()) })
}

// Cancel dari preview atau file picker
func (s *Service) Cancel(ctx context.Context, id domain.FlowID) (*domain.Flow, error) {
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error { return f.Cancel(s.Clock.Now()) })
}

// Confirm "Use This Photo"
func (s *Service) Confirm(ctx context.Context, id domain.FlowID) (*domain.Flow, error) {
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error { return f.Confirm(s.Clock.Now()) })
}

// Reset kembali ke pemilihan metode dari state apapun
func (s *Service) Reset(ctx context.Context, id domain.FlowID) (*domain.Flow, error) {
	return s.Repo.Update(ctx, id, func(f *domain.Flow) error {
		f.Reset(s.Clock.Now())
		return nil
	})
}

// PurgeIdle hapus flow yang tidak disentuh sejak idle
func (s *Service) PurgeIdle(ctx context.Context, idle time.Duration) (int, error) {
	return s.Repo.PurgeIdleSince(ctx, s.Clock.Now().Add(-idle))
}

func invalid(event string, f *domain.Flow) error {
	return fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, event, f.State)
}
