package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/RMahshie/matchviz/internal/processing"
	"github.com/RMahshie/matchviz/internal/render"
	"github.com/RMahshie/matchviz/internal/sweep"
	"github.com/RMahshie/matchviz/pkg/models"
)

// MockSweepService implements processing.SweepService for testing
type MockSweepService struct {
	mock.Mock
}

func (m *MockSweepService) Sweep(ctx context.Context, target sweep.Target) (*processing.Run, error) {
	args := m.Called(ctx, target)
	if run := args.Get(0); run != nil {
		return run.(*processing.Run), args.Error(1)
	}
	return nil, args.Error(1)
}

func computedRun(t *testing.T, target sweep.Target) *processing.Run {
	t.Helper()

	res, err := sweep.Compute(target)
	require.NoError(t, err)
	return &processing.Run{ID: uuid.New(), Result: res, Duration: time.Millisecond}
}

func openOnlyRun(target sweep.Target) *processing.Run {
	return &processing.Run{
		ID: uuid.New(),
		Result: &sweep.Result{
			Target:             target,
			LoadResistanceOhms: sweep.LoadResistanceOhms,
			Points: []sweep.Point{
				{InductanceHenries: 1e-9, Capacitance: sweep.Capacitance{Open: true}, MatchErrorOhms: 2},
			},
		},
	}
}

func defaultParams() models.TargetParams {
	return models.TargetParams{Resistance: 40, Reactance: 13, FrequencyGHz: 2.4}
}

func newTestHandler(svc processing.SweepService) *SweepHandler {
	return NewSweepHandler(svc, sweep.DefaultLimits(), render.Options{Width: 640, Height: 400})
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, want, se.GetStatus())
}

func TestSweep(t *testing.T) {
	target := sweep.TargetFromGHz(40, 13, 2.4)
	run := computedRun(t, target)

	mockSvc := new(MockSweepService)
	mockSvc.On("Sweep", mock.Anything, target).Return(run, nil)

	h := newTestHandler(mockSvc)
	resp, err := h.Sweep(context.Background(), &models.SweepRequest{TargetParams: defaultParams()})
	require.NoError(t, err)

	body := resp.Body
	assert.Equal(t, run.ID.String(), body.RunID)
	assert.Equal(t, "Matching for Z = 40 + j13 at 2.40 GHz", body.Title)
	assert.Equal(t, 2.4, body.Target.FrequencyGHz)
	assert.Equal(t, sweep.LoadResistanceOhms, body.LoadResistance)
	assert.Equal(t, sweep.DefaultSamples, body.Samples)
	assert.Len(t, body.Points, sweep.DefaultSamples)
	assert.Zero(t, body.NonFinite)
	require.NotNil(t, body.Best)
	assert.InDelta(t, body.ErrorMin, body.Best.MatchErrorOhms, 1e-12)
	assert.LessOrEqual(t, body.ErrorMin, body.ErrorMax)

	first := body.Points[0]
	assert.InDelta(t, 0.5, first.InductanceNH, 1e-9)
	require.NotNil(t, first.CapacitancePF)
	assert.Greater(t, *first.CapacitancePF, 0.0)

	mockSvc.AssertExpectations(t)
}

func TestSweep_Top(t *testing.T) {
	target := sweep.TargetFromGHz(40, 13, 2.4)
	mockSvc := new(MockSweepService)
	mockSvc.On("Sweep", mock.Anything, target).Return(computedRun(t, target), nil)

	h := newTestHandler(mockSvc)
	resp, err := h.Sweep(context.Background(), &models.SweepRequest{TargetParams: defaultParams(), Top: 5})
	require.NoError(t, err)

	require.Len(t, resp.Body.Points, 5)
	assert.Equal(t, *resp.Body.Best, resp.Body.Points[0])
	for i := 1; i < len(resp.Body.Points); i++ {
		assert.LessOrEqual(t, resp.Body.Points[i-1].MatchErrorOhms, resp.Body.Points[i].MatchErrorOhms)
	}
}

func TestSweep_OpenCapacitorIsNull(t *testing.T) {
	target := sweep.TargetFromGHz(40, 13, 2.4)
	mockSvc := new(MockSweepService)
	mockSvc.On("Sweep", mock.Anything, target).Return(openOnlyRun(target), nil)

	h := newTestHandler(mockSvc)
	resp, err := h.Sweep(context.Background(), &models.SweepRequest{TargetParams: defaultParams()})
	require.NoError(t, err)

	require.Len(t, resp.Body.Points, 1)
	assert.Nil(t, resp.Body.Points[0].CapacitancePF)
	assert.True(t, resp.Body.Points[0].NoCapacitor)
	assert.Equal(t, 1, resp.Body.NoCapacitor)
}

func TestSweep_Errors(t *testing.T) {
	tests := []struct {
		name      string
		params    models.TargetParams
		mockSetup func(*MockSweepService)
		wantCode  int
	}{
		{
			name:      "resistance below range",
			params:    models.TargetParams{Resistance: 5, Reactance: 13, FrequencyGHz: 2.4},
			mockSetup: func(m *MockSweepService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "frequency above range",
			params:    models.TargetParams{Resistance: 40, Reactance: 13, FrequencyGHz: 7},
			mockSetup: func(m *MockSweepService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "invalid frequency from service",
			params: defaultParams(),
			mockSetup: func(m *MockSweepService) {
				m.On("Sweep", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: test", sweep.ErrInvalidFrequency))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "invalid target from service",
			params: defaultParams(),
			mockSetup: func(m *MockSweepService) {
				m.On("Sweep", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: test", sweep.ErrInvalidTarget))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "unexpected failure",
			params: defaultParams(),
			mockSetup: func(m *MockSweepService) {
				m.On("Sweep", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSweepService)
			tt.mockSetup(mockSvc)

			h := newTestHandler(mockSvc)
			_, err := h.Sweep(context.Background(), &models.SweepRequest{TargetParams: tt.params})
			assertStatus(t, err, tt.wantCode)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPlot(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		contentType string
		prefix      []byte
	}{
		{"png", "png", "image/png", []byte("\x89PNG")},
		{"svg", "svg", "image/svg+xml", []byte("<svg")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := sweep.TargetFromGHz(40, 13, 2.4)
			mockSvc := new(MockSweepService)
			mockSvc.On("Sweep", mock.Anything, target).Return(computedRun(t, target), nil)

			h := newTestHandler(mockSvc)
			resp, err := h.Plot(context.Background(), &models.PlotRequest{
				TargetParams: defaultParams(),
				Format:       tt.format,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.contentType, resp.ContentType)
			assert.True(t, bytes.HasPrefix(resp.Body, tt.prefix))
		})
	}
}

func TestPlot_NothingToPlot(t *testing.T) {
	target := sweep.TargetFromGHz(40, 13, 2.4)
	mockSvc := new(MockSweepService)
	mockSvc.On("Sweep", mock.Anything, target).Return(openOnlyRun(target), nil)

	h := newTestHandler(mockSvc)
	_, err := h.Plot(context.Background(), &models.PlotRequest{TargetParams: defaultParams(), Format: "png"})
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

func TestPlot_UnknownFormat(t *testing.T) {
	mockSvc := new(MockSweepService)

	h := newTestHandler(mockSvc)
	_, err := h.Plot(context.Background(), &models.PlotRequest{TargetParams: defaultParams(), Format: "gif"})
	assertStatus(t, err, http.StatusBadRequest)
	mockSvc.AssertNotCalled(t, "Sweep", mock.Anything, mock.Anything)
}

func TestExport(t *testing.T) {
	target := sweep.TargetFromGHz(40, 13, 2.4)

	t.Run("xlsx", func(t *testing.T) {
		mockSvc := new(MockSweepService)
		mockSvc.On("Sweep", mock.Anything, target).Return(computedRun(t, target), nil)

		h := newTestHandler(mockSvc)
		resp, err := h.Export(context.Background(), &models.ExportRequest{TargetParams: defaultParams(), Format: "xlsx"})
		require.NoError(t, err)

		assert.Equal(t, `attachment; filename="matching_R40_X13_F2.40GHz.xlsx"`, resp.ContentDisposition)
		f, err := excelize.OpenReader(bytes.NewReader(resp.Body))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Sweep")
		require.NoError(t, err)
		assert.Len(t, rows, sweep.DefaultSamples+1)
	})

	t.Run("tsv", func(t *testing.T) {
		mockSvc := new(MockSweepService)
		mockSvc.On("Sweep", mock.Anything, target).Return(computedRun(t, target), nil)

		h := newTestHandler(mockSvc)
		resp, err := h.Export(context.Background(), &models.ExportRequest{TargetParams: defaultParams(), Format: "tsv"})
		require.NoError(t, err)

		assert.Equal(t, "text/tab-separated-values", resp.ContentType)
		assert.Equal(t, sweep.DefaultSamples+1, bytes.Count(resp.Body, []byte("\n")))
	})
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"out of range", fmt.Errorf("%w: r", sweep.ErrOutOfRange), http.StatusBadRequest},
		{"nothing to plot", render.ErrNothingToPlot, http.StatusUnprocessableEntity},
		{"cancelled", fmt.Errorf("sweep cancelled: %w", context.Canceled), http.StatusServiceUnavailable},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStatus(t, statusError(tt.err), tt.want)
		})
	}
}
