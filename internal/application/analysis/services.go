package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/skinai/internal/application"
	domai "github.com/bryanwahyu/skinai/internal/domain/ai"
	domain "github.com/bryanwahyu/skinai/internal/domain/analysis"
	"github.com/bryanwahyu/skinai/internal/domain/capture"
	"github.com/bryanwahyu/skinai/internal/domain/handoff"
)

// Recorder hook metrics; boleh nil
type Recorder interface {
	AnalysisStarted()
	AnalysisFinished(err error, d time.Duration)
}

// Service implements use-case analisa: satu request AI per aksi user,
// tanpa retry, tanpa cache.
type Service struct {
	Flows    capture.Repository
	AI       domai.Client
	Handoffs handoff.Repository
	Images   handoff.ImageStore
	Clock    application.Clock
	TTL      time.Duration
	Metrics  Recorder
	Logger   *slog.Logger
}

// Failure error yang sudah siap ditampilkan ke user
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }

// Outcome hasil Analyze yang berhasil
type Outcome struct {
	HandoffID handoff.EntryID `json:"handoff_id"`
	Result    *domain.Result  `json:"result"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (s *Service) ttl() time.Duration {
	if s.TTL <= 0 {
		return handoff.DefaultTTL
	}
	return s.TTL
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Analyze jalankan analisa untuk flow yang sudah confirmed.
// Hasil yang malformed atau tidak lengkap tidak pernah masuk handoff store.
func (s *Service) Analyze(ctx context.Context, id capture.FlowID) (*Outcome, error) {
	flow, err := s.Flows.Update(ctx, id, func(f *capture.Flow) error {
		return f.BeginAnalysis(s.Clock.Now())
	})
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.AnalysisStarted()
	}
	start := s.Clock.Now()
	out, err := s.run(ctx, flow)
	if s.Metrics != nil {
		s.Metrics.AnalysisFinished(err, s.Clock.Now().Sub(start))
	}

	// pakai context.Background supaya state tetap tersimpan walau request dibatalkan
	if err != nil {
		fail := userFailure(err)
		s.logger().Error("skin analysis failed", "flow_id", id, "error", err)
		if _, uerr := s.Flows.Update(context.Background(), id, func(f *capture.Flow) error {
			return f.AnalysisFailed(fail.Message, s.Clock.Now())
		}); uerr != nil {
			s.logger().Warn("failed to reset flow after analysis error", "flow_id", id, "error", uerr)
		}
		return nil, fail
	}

	if _, err := s.Flows.Update(context.Background(), id, func(f *capture.Flow) error {
		return f.AnalysisSucceeded(string(out.HandoffID), s.Clock.Now())
	}); err != nil {
		// flow direset/dihapus selagi AI jalan, hasil tidak punya pemilik
		s.dropEntry(out.HandoffID)
		return nil, err
	}
	s.logger().Info("skin analysis stored",
		"flow_id", id,
		"handoff_id", out.HandoffID,
		"analysis_id", out.Result.AnalysisID,
	)
	return out, nil
}

func (s *Service) run(ctx context.Context, flow *capture.Flow) (*Outcome, error) {
	img := flow.Image
	if !img.Valid() {
		return nil, capture.ErrNoImage
	}
	if err := img.CheckEncodedSize(); err != nil {
		return nil, err
	}

	raw, err := s.AI.AnalyzeImage(ctx, img)
	if err != nil {
		return nil, err
	}

	res, err := domain.Parse(raw)
	if err != nil {
		s.logger().Debug("failed to parse AI response", "raw", raw)
		return nil, err
	}
	now := s.Clock.Now()
	res.Backfill(now)
	if err := res.Validate(); err != nil {
		return nil, err
	}

	entryID := handoff.EntryID(uuid.New().String())
	imageKey := sourceKey(entryID)
	if s.Images != nil {
		if err := s.Images.Put(ctx, imageKey, img.Data, img.ContentType); err != nil {
			return nil, fmt.Errorf("store source image: %w", err)
		}
	} else {
		imageKey = ""
	}

	entry := &handoff.Entry{
		ID:          entryID,
		FlowID:      string(flow.ID),
		Result:      res,
		ImageKey:    imageKey,
		ContentType: img.ContentType,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl()),
	}
	if err := s.Handoffs.Put(ctx, entry); err != nil {
		if imageKey != "" {
			_ = s.Images.Delete(context.Background(), imageKey)
		}
		return nil, fmt.Errorf("store analysis result: %w", err)
	}
	return &Outcome{HandoffID: entry.ID, Result: res, ExpiresAt: entry.ExpiresAt}, nil
}

// Result ambil hasil dari handoff store untuk halaman results
func (s *Service) Result(ctx context.Context, id handoff.EntryID) (*handoff.Entry, error) {
	return s.Handoffs.Get(ctx, id, s.Clock.Now())
}

// SourceImage foto yang dianalisa
func (s *Service) SourceImage(ctx context.Context, id handoff.EntryID) ([]byte, string, error) {
	e, err := s.Result(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if e.ImageKey == "" || s.Images == nil {
		return nil, "", handoff.ErrNotFound
	}
	data, err := s.Images.Get(ctx, e.ImageKey)
	if err != nil {
		return nil, "", err
	}
	return data, e.ContentType, nil
}

// Discard hapus hasil + foto, dipanggil saat user selesai
func (s *Service) Discard(ctx context.Context, id handoff.EntryID) error {
	e, err := s.Result(ctx, id)
	if err != nil {
		return err
	}
	if e.ImageKey != "" && s.Images != nil {
		if err := s.Images.Delete(ctx, e.ImageKey); err != nil {
			return err
		}
	}
	return s.Handoffs.Delete(ctx, id)
}

func sourceKey(id handoff.EntryID) string {
	return fmt.Sprintf("analysis/%s/source.jpg", id)
}

// dropEntry hapus entry + foto yang sudah tersimpan tapi tidak jadi dipakai
func (s *Service) dropEntry(id handoff.EntryID) {
	ctx := context.Background()
	if s.Images != nil {
		if err := s.Images.Delete(ctx, sourceKey(id)); err != nil {
			s.logger().Warn("failed to delete orphaned image", "handoff_id", id, "error", err)
		}
	}
	if err := s.Handoffs.Delete(ctx, id); err != nil {
		s.logger().Warn("failed to delete orphaned result", "handoff_id", id, "error", err)
	}
}

// PurgeExpired hapus entry expired beserta fotonya
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	keys, err := s.Handoffs.PurgeExpired(ctx, s.Clock.Now())
	if err != nil {
		return 0, err
	}
	if s.Images != nil {
		for _, k := range keys {
			if k == "" {
				continue
			}
			if err := s.Images.Delete(ctx, k); err != nil {
				s.logger().Warn("failed to delete expired image", "key", k, "error", err)
			}
		}
	}
	return len(keys), nil
}

// userFailure ubah error jadi pesan yang bisa dibaca user
func userFailure(err error) *Failure {
	switch {
	case errors.Is(err, domai.ErrNotConfigured):
		return &Failure{Message: "Analysis service not configured. Please check your configuration.", Err: err}
	case errors.Is(err, capture.ErrNoImage):
		return &Failure{Message: "Please capture a photo or upload an image first.", Err: err}
	}
	return &Failure{Message: "Skin analysis failed: " + err.Error(), Err: err}
}
