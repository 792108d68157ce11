package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/skinai/internal/domain/media"
)

var t0 = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func jpeg() *media.Payload {
	return &media.Payload{Data: []byte{0xff, 0xd8, 0xff}, ContentType: "image/jpeg", Width: 4, Height: 3}
}

func flowIn(t *testing.T, state State, method Method) *Flow {
	t.Helper()
	f := NewFlow("f1", t0)
	switch {
	case state == StateIdle:
	case method == MethodCamera:
		require.NoError(t, f.SelectMethod(MethodCamera, t0))
		if state == StatePermissionRequested {
			break
		}
		require.NoError(t, f.PermissionResult(true, t0))
		if state == StateLivePreview {
			break
		}
		require.NoError(t, f.Capture(jpeg(), t0))
	default:
		require.NoError(t, f.SelectMethod(MethodUpload, t0))
		if state == StateUploadSelected {
			break
		}
		require.NoError(t, f.Upload(jpeg(), t0))
	}
	if state == StateConfirmed || state == StateAnalyzing || state == StateDone {
		require.NoError(t, f.Confirm(t0))
	}
	if state == StateAnalyzing || state == StateDone {
		require.NoError(t, f.BeginAnalysis(t0))
	}
	if state == StateDone {
		require.NoError(t, f.AnalysisSucceeded("h1", t0))
	}
	require.Equal(t, state, f.State)
	return f
}

func TestCameraHappyPath(t *testing.T) {
	f := NewFlow("f1", t0)
	assert.Equal(t, StateIdle, f.State)

	require.NoError(t, f.SelectMethod(MethodCamera, t0))
	assert.Equal(t, StatePermissionRequested, f.State)
	assert.True(t, f.CameraActive())

	require.NoError(t, f.PermissionResult(true, t0))
	assert.Equal(t, StateLivePreview, f.State)

	require.NoError(t, f.Capture(jpeg(), t0.Add(time.Second)))
	assert.Equal(t, StateCaptured, f.State)
	assert.True(t, f.HasImage())
	assert.False(t, f.CameraActive())
	assert.False(t, f.CanAnalyze())

	require.NoError(t, f.Confirm(t0))
	assert.True(t, f.CanAnalyze())

	require.NoError(t, f.BeginAnalysis(t0))
	assert.Equal(t, StateAnalyzing, f.State)
	require.NoError(t, f.AnalysisSucceeded("h1", t0))
	assert.Equal(t, StateDone, f.State)
	assert.Equal(t, "h1", f.HandoffID)
}

func TestPermissionDeniedReturnsToIdle(t *testing.T) {
	f := flowIn(t, StatePermissionRequested, MethodCamera)
	require.NoError(t, f.PermissionResult(false, t0))
	assert.Equal(t, StateIdle, f.State)
	assert.Equal(t, MethodNone, f.Method)
	assert.Equal(t, PermissionDeniedMessage, f.LastError)
	assert.False(t, f.HasImage())

	// pesan error hilang saat user memilih lagi
	require.NoError(t, f.SelectMethod(MethodUpload, t0))
	assert.Empty(t, f.LastError)
}

func TestRetakeAndChooseDifferent(t *testing.T) {
	cam := flowIn(t, StateCaptured, MethodCamera)
	require.NoError(t, cam.Retake(t0))
	assert.Equal(t, StatePermissionRequested, cam.State)
	assert.Nil(t, cam.Image)
	assert.ErrorIs(t, cam.ChooseDifferent(t0), ErrInvalidTransition)

	up := flowIn(t, StateCaptured, MethodUpload)
	assert.ErrorIs(t, up.Retake(t0), ErrInvalidTransition)
	require.NoError(t, up.ChooseDifferent(t0))
	assert.Equal(t, StateIdle, up.State)
	assert.Nil(t, up.Image)
}

func TestUploadReplacesImageInCaptured(t *testing.T) {
	f := flowIn(t, StateCaptured, MethodUpload)
	next := jpeg()
	next.Width = 99
	require.NoError(t, f.Upload(next, t0))
	assert.Equal(t, StateCaptured, f.State)
	assert.Equal(t, 99, f.Image.Width)

	cam := flowIn(t, StateCaptured, MethodCamera)
	assert.ErrorIs(t, cam.Upload(jpeg(), t0), ErrInvalidTransition)
}

func TestInvalidPayloadKeepsState(t *testing.T) {
	f := flowIn(t, StateLivePreview, MethodCamera)
	assert.ErrorIs(t, f.Capture(nil, t0), media.ErrEmpty)
	assert.ErrorIs(t, f.Capture(&media.Payload{ContentType: "image/jpeg"}, t0), media.ErrEmpty)
	assert.Equal(t, StateLivePreview, f.State)

	u := flowIn(t, StateUploadSelected, MethodUpload)
	assert.ErrorIs(t, u.Upload(&media.Payload{}, t0), media.ErrEmpty)
	assert.Equal(t, StateUploadSelected, u.State)
}

func TestCancel(t *testing.T) {
	for _, tc := range []struct {
		state  State
		method Method
	}{
		{StatePermissionRequested, MethodCamera},
		{StateLivePreview, MethodCamera},
		{StateUploadSelected, MethodUpload},
	} {
		f := flowIn(t, tc.state, tc.method)
		require.NoError(t, f.Cancel(t0), tc.state)
		assert.Equal(t, StateIdle, f.State)
		assert.Equal(t, MethodNone, f.Method)
	}
	assert.ErrorIs(t, flowIn(t, StateCaptured, MethodCamera).Cancel(t0), ErrInvalidTransition)
	assert.ErrorIs(t, NewFlow("x", t0).Cancel(t0), ErrInvalidTransition)
}

func TestAnalyzeRequiresConfirmedImage(t *testing.T) {
	assert.ErrorIs(t, NewFlow("x", t0).BeginAnalysis(t0), ErrNoImage)
	assert.ErrorIs(t, flowIn(t, StateCaptured, MethodCamera).BeginAnalysis(t0), ErrInvalidTransition)

	// confirmed tanpa gambar tidak mungkin lewat transisi normal, tapi tetap ditolak
	f := flowIn(t, StateConfirmed, MethodUpload)
	f.Image = nil
	assert.ErrorIs(t, f.BeginAnalysis(t0), ErrNoImage)
}

func TestAnalysisFailureKeepsImage(t *testing.T) {
	f := flowIn(t, StateAnalyzing, MethodCamera)
	require.NoError(t, f.AnalysisFailed("Skin analysis failed: boom", t0))
	assert.Equal(t, StateConfirmed, f.State)
	assert.True(t, f.HasImage())
	assert.Equal(t, "Skin analysis failed: boom", f.LastError)

	// retry dari confirmed
	require.NoError(t, f.BeginAnalysis(t0))
	assert.Empty(t, f.LastError)
}

func TestSelectMethod(t *testing.T) {
	f := NewFlow("x", t0)
	err := f.SelectMethod("fax", t0)
	assert.ErrorIs(t, err, ErrInvalidMethod)
	assert.Equal(t, StateIdle, f.State)

	live := flowIn(t, StateLivePreview, MethodCamera)
	assert.ErrorIs(t, live.SelectMethod(MethodUpload, t0), ErrInvalidTransition)
}

// setiap state bisa kembali ke idle, tidak ada jalan buntu
func TestNoDeadEnds(t *testing.T) {
	cases := []struct {
		state  State
		method Method
	}{
		{StateIdle, MethodNone},
		{StatePermissionRequested, MethodCamera},
		{StateLivePreview, MethodCamera},
		{StateUploadSelected, MethodUpload},
		{StateCaptured, MethodCamera},
		{StateCaptured, MethodUpload},
		{StateConfirmed, MethodCamera},
		{StateAnalyzing, MethodUpload},
		{StateDone, MethodCamera},
	}
	for _, tc := range cases {
		t.Run(string(tc.state)+"/"+string(tc.method), func(t *testing.T) {
			f := flowIn(t, tc.state, tc.method)
			f.Reset(t0.Add(time.Minute))
			assert.Equal(t, StateIdle, f.State)
			assert.False(t, f.HasImage())
			assert.Empty(t, f.HandoffID)
			assert.Equal(t, t0.Add(time.Minute), f.UpdatedAt)
		})
	}
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := NewFlow("x", t0).Confirm(t0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Contains(t, err.Error(), "confirm from idle")
}
