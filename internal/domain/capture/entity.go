package capture

import (
	"errors"
	"fmt"
	"time"

	"github.com/bryanwahyu/skinai/internal/domain/media"
)

// FlowID identifier untuk satu capture flow
type FlowID string

// State enum
type State string

const (
	StateIdle                State = "idle"
	StatePermissionRequested State = "permission_requested"
	StateLivePreview         State = "live_preview"
	StateUploadSelected      State = "upload_selected"
	StateCaptured            State = "captured"
	StateConfirmed           State = "confirmed"
	StateAnalyzing           State = "analyzing"
	StateDone                State = "done"
)

// Method enum
type Method string

const (
	MethodNone   Method = ""
	MethodCamera Method = "camera"
	MethodUpload Method = "upload"
)

// PermissionDeniedMessage pesan yang ditampilkan ke user saat kamera ditolak
const PermissionDeniedMessage = "Could not access camera. Please check permissions."

var (
	ErrFlowNotFound      = errors.New("capture flow not found")
	ErrInvalidTransition = errors.New("invalid capture transition")
	ErrInvalidMethod     = errors.New("invalid capture method")
	ErrNoImage           = errors.New("please capture a photo or upload an image first")
)

// Flow aggregate root untuk satu sesi capture
type Flow struct {
	ID        FlowID         `json:"id"`
	State     State          `json:"state"`
	Method    Method         `json:"method,omitempty"`
	Image     *media.Payload `json:"image,omitempty"`
	LastError string         `json:"last_error,omitempty"`
	HandoffID string         `json:"handoff_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewFlow buat flow baru di state idle
func NewFlow(id FlowID, now time.Time) *Flow {
	return &Flow{ID: id, State: StateIdle, CreatedAt: now, UpdatedAt: now}
}

// HasImage true kalau flow memegang tepat satu payload yang valid
func (f *Flow) HasImage() bool { return f.Image.Valid() }

// CameraActive true selama stream kamera dipegang (permission + preview)
func (f *Flow) CameraActive() bool {
	return f.State == StatePermissionRequested || f.State == StateLivePreview
}

// CanAnalyze true kalau tombol analisa boleh aktif
func (f *Flow) CanAnalyze() bool {
	return f.State == StateConfirmed && f.HasImage()
}

func (f *Flow) invalid(event string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, f.State)
}

func (f *Flow) move(to State, now time.Time) {
	f.State = to
	f.UpdatedAt = now
}

// SelectMethod pilih camera atau upload, selalu menghapus gambar lama
func (f *Flow) SelectMethod(m Method, now time.Time) error {
	if f.State != StateIdle {
		return f.invalid("select_" + string(m))
	}
	switch m {
	case MethodCamera:
		f.Method = m
		f.Image = nil
		f.LastError = ""
		f.move(StatePermissionRequested, now)
	case MethodUpload:
		f.Method = m
		f.Image = nil
		f.LastError = ""
		f.move(StateUploadSelected, now)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMethod, m)
	}
	return nil
}

// PermissionResult hasil getUserMedia di browser
func (f *Flow) PermissionResult(granted bool, now time.Time) error {
	if f.State != StatePermissionRequested {
		return f.invalid("permission")
	}
	if granted {
		f.move(StateLivePreview, now)
		return nil
	}
	f.Method = MethodNone
	f.LastError = PermissionDeniedMessage
	f.move(StateIdle, now)
	return nil
}

// Capture simpan frame dari live preview
func (f *Flow) Capture(p *media.Payload, now time.Time) error {
	if f.State != StateLivePreview {
		return f.invalid("capture")
	}
	if !p.Valid() {
		return media.ErrEmpty
	}
	f.Image = p
	f.move(StateCaptured, now)
	return nil
}

// Upload simpan file yang dipilih user; di state captured file lama diganti
func (f *Flow) Upload(p *media.Payload, now time.Time) error {
	replacing := f.State == StateCaptured && f.Method == MethodUpload
	if f.State != StateUploadSelected && !replacing {
		return f.invalid("upload")
	}
	if !p.Valid() {
		return media.ErrEmpty
	}
	f.Image = p
	f.move(StateCaptured, now)
	return nil
}

// Retake buang foto kamera dan minta kamera lagi
func (f *Flow) Retake(now time.Time) error {
	if f.State != StateCaptured || f.Method != MethodCamera {
		return f.invalid("retake")
	}
	f.Image = nil
	f.move(StatePermissionRequested, now)
	return nil
}

// ChooseDifferent buang file upload dan kembali ke pemilihan metode
func (f *Flow) ChooseDifferent(now time.Time) error {
	if f.State != StateCaptured || f.Method != MethodUpload {
		return f.invalid("choose_different")
	}
	f.Image = nil
	f.Method = MethodNone
	f.move(StateIdle, now)
	return nil
}

// Cancel dari preview atau pemilihan file
func (f *Flow) Cancel(now time.Time) error {
	switch f.State {
	case StatePermissionRequested, StateLivePreview, StateUploadSelected:
		f.Method = MethodNone
		f.Image = nil
		f.move(StateIdle, now)
		return nil
	default:
		return f.invalid("cancel")
	}
}

// Confirm "Use This Photo"
func (f *Flow) Confirm(now time.Time) error {
	if f.State != StateCaptured {
		return f.invalid("confirm")
	}
	if !f.HasImage() {
		return ErrNoImage
	}
	f.LastError = ""
	f.move(StateConfirmed, now)
	return nil
}

// BeginAnalysis tandai request AI sedang berjalan
func (f *Flow) BeginAnalysis(now time.Time) error {
	if f.State != StateConfirmed {
		if !f.HasImage() {
			return ErrNoImage
		}
		return f.invalid("begin_analysis")
	}
	if !f.HasImage() {
		return ErrNoImage
	}
	f.LastError = ""
	f.move(StateAnalyzing, now)
	return nil
}

// AnalysisFailed kembalikan ke confirmed supaya user bisa coba lagi
func (f *Flow) AnalysisFailed(msg string, now time.Time) error {
	if f.State != StateAnalyzing {
		return f.invalid("analysis_failed")
	}
	f.LastError = msg
	f.move(StateConfirmed, now)
	return nil
}

// AnalysisSucceeded simpan handoff id untuk halaman results
func (f *Flow) AnalysisSucceeded(handoffID string, now time.Time) error {
	if f.State != StateAnalyzing {
		return f.invalid("analysis_succeeded")
	}
	f.HandoffID = handoffID
	f.move(StateDone, now)
	return nil
}

// Reset selalu valid
func (f *Flow) Reset(now time.Time) {
	f.Method = MethodNone
	f.Image = nil
	f.LastError = ""
	f.HandoffID = ""
	f.move(StateIdle, now)
}
