package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/matchviz/internal/export"
	"github.com/RMahshie/matchviz/internal/processing"
	"github.com/RMahshie/matchviz/internal/render"
	"github.com/RMahshie/matchviz/internal/sweep"
	"github.com/RMahshie/matchviz/pkg/models"
)

// SweepHandler handles sweep-related HTTP requests
type SweepHandler struct {
	sweepSvc processing.SweepService
	limits   sweep.Limits
	plot     render.Options
}

// NewSweepHandler creates a new sweep handler. plot supplies the default
// image size used when a request leaves width or height at zero.
func NewSweepHandler(sweepSvc processing.SweepService, limits sweep.Limits, plot render.Options) *SweepHandler {
	return &SweepHandler{
		sweepSvc: sweepSvc,
		limits:   limits,
		plot:     plot,
	}
}

// Sweep computes the sweep for the requested target and returns every sample
func (h *SweepHandler) Sweep(ctx context.Context, req *models.SweepRequest) (*models.SweepResponse, error) {
	run, err := h.run(ctx, req.TargetParams)
	if err != nil {
		return nil, err
	}
	res := run.Result

	points := res.Points
	if req.Top > 0 {
		points = res.Ranked(req.Top)
	}

	lo, hi := res.ErrorRange()
	body := models.SweepResponseBody{
		RunID: run.ID.String(),
		Title: res.Title(),
		Target: models.TargetBody{
			ResistanceOhms: res.Target.ResistanceOhms,
			ReactanceOhms:  res.Target.ReactanceOhms,
			FrequencyGHz:   res.Target.FrequencyGHz(),
		},
		LoadResistance: res.LoadResistanceOhms,
		Samples:        len(res.Points),
		ErrorMin:       lo,
		ErrorMax:       hi,
		NoCapacitor:    res.OpenCount(),
		NonFinite:      res.NonFinite(),
		Points:         make([]models.SweepPoint, 0, len(points)),
	}
	if best, ok := res.Best(); ok {
		bp := toSweepPoint(best)
		body.Best = &bp
	}
	for _, p := range points {
		body.Points = append(body.Points, toSweepPoint(p))
	}

	log.Info().Str("runID", body.RunID).Int("points", len(body.Points)).Msg("Returning sweep")
	return &models.SweepResponse{Body: body}, nil
}

// Plot renders the sweep as a PNG or SVG scatter chart
func (h *SweepHandler) Plot(ctx context.Context, req *models.PlotRequest) (*models.PlotResponse, error) {
	format, err := render.ParseFormat(req.Format)
	if err != nil {
		return nil, huma.Error400BadRequest("Unsupported image format", err)
	}

	run, err := h.run(ctx, req.TargetParams)
	if err != nil {
		return nil, err
	}

	opts := render.Options{Width: h.plot.Width, Height: h.plot.Height, Format: format}
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}

	var buf bytes.Buffer
	if err := render.Scatter(&buf, run.Result, opts); err != nil {
		return nil, statusError(err)
	}

	log.Info().Str("runID", run.ID.String()).Str("format", string(format)).Int("bytes", buf.Len()).Msg("Rendered sweep plot")
	return &models.PlotResponse{
		ContentType:  format.ContentType(),
		CacheControl: "no-store",
		Body:         buf.Bytes(),
	}, nil
}

// Export returns the sweep as an XLSX workbook or TSV file download
func (h *SweepHandler) Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, huma.Error400BadRequest("Unsupported export format", err)
	}

	run, err := h.run(ctx, req.TargetParams)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, run.Result, format); err != nil {
		return nil, statusError(err)
	}

	filename := exportFilename(run.Result.Target, format)
	log.Info().Str("runID", run.ID.String()).Str("filename", filename).Int("bytes", buf.Len()).Msg("Exported sweep")
	return &models.ExportResponse{
		ContentType:        format.ContentType(),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               buf.Bytes(),
	}, nil
}

// run validates the query against the slider limits and computes the sweep
func (h *SweepHandler) run(ctx context.Context, p models.TargetParams) (*processing.Run, error) {
	if err := h.limits.Validate(p.Resistance, p.Reactance, p.FrequencyGHz); err != nil {
		return nil, statusError(err)
	}

	run, err := h.sweepSvc.Sweep(ctx, sweep.TargetFromGHz(p.Resistance, p.Reactance, p.FrequencyGHz))
	if err != nil {
		return nil, statusError(err)
	}
	return run, nil
}

// statusError maps domain errors onto HTTP errors
func statusError(err error) error {
	switch {
	case errors.Is(err, sweep.ErrOutOfRange):
		return huma.Error400BadRequest("Target outside the supported range", err)
	case errors.Is(err, sweep.ErrInvalidFrequency):
		return huma.Error400BadRequest("Frequency must be a positive finite number", err)
	case errors.Is(err, sweep.ErrInvalidTarget):
		return huma.Error400BadRequest("Target impedance must be finite", err)
	case errors.Is(err, render.ErrNothingToPlot):
		return huma.Error422UnprocessableEntity("No sample of this sweep can be plotted", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("Request cancelled", err)
	default:
		log.Error().Err(err).Msg("Sweep request failed")
		return huma.Error500InternalServerError("Failed to compute sweep", err)
	}
}

func toSweepPoint(p sweep.Point) models.SweepPoint {
	sp := models.SweepPoint{
		InductanceNH:   p.InductanceNH(),
		NoCapacitor:    p.Capacitance.Open,
		MatchErrorOhms: p.MatchErrorOhms,
	}
	if !p.Capacitance.Open {
		pf := p.Capacitance.Picofarads()
		sp.CapacitancePF = &pf
	}
	return sp
}

func exportFilename(t sweep.Target, f export.Format) string {
	return fmt.Sprintf("matching_R%g_X%g_F%.2fGHz%s", t.ResistanceOhms, t.ReactanceOhms, t.FrequencyGHz(), f.Extension())
}
