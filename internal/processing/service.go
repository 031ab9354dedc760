package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/matchviz/internal/sweep"
)

// SweepService runs matching sweeps for the API layer
type SweepService interface {
	Sweep(ctx context.Context, target sweep.Target) (*Run, error)
}

// Run is a completed sweep tagged with a run ID for log correlation
type Run struct {
	ID       uuid.UUID
	Result   *sweep.Result
	Duration time.Duration
}

type sweepService struct {
	calc   *sweep.Calculator
	logger zerolog.Logger
}

// NewSweepService creates a sweep service over the given calculator
func NewSweepService(calc *sweep.Calculator) SweepService {
	return &sweepService{
		calc:   calc,
		logger: log.With().Str("component", "sweep").Logger(),
	}
}

func (s *sweepService) Sweep(ctx context.Context, target sweep.Target) (*Run, error) {
	// Step 1: Bail out if the request is already gone
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep cancelled: %w", err)
	}

	runID := uuid.New()
	start := time.Now()

	// Step 2: Compute
	result, err := s.calc.Compute(target)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("runID", runID.String()).
			Float64("resistance", target.ResistanceOhms).
			Float64("reactance", target.ReactanceOhms).
			Float64("frequencyHz", target.FrequencyHz).
			Msg("Sweep rejected")
		return nil, err
	}
	elapsed := time.Since(start)

	// Step 3: Log summary
	event := s.logger.Debug().
		Str("runID", runID.String()).
		Str("title", result.Title()).
		Int("samples", len(result.Points)).
		Int("open", result.OpenCount()).
		Int("nonFinite", result.NonFinite()).
		Dur("latency", elapsed)
	if best, ok := result.Best(); ok {
		event = event.
			Float64("bestInductanceNH", best.InductanceNH()).
			Float64("bestErrorOhms", best.MatchErrorOhms)
	}
	event.Msg("Sweep completed")

	if n := result.NonFinite(); n > 0 {
		s.logger.Warn().Str("runID", runID.String()).Int("nonFinite", n).Msg("Sweep produced non-finite samples")
	}

	return &Run{
		ID:       runID,
		Result:   result,
		Duration: elapsed,
	}, nil
}
