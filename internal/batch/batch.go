// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs a resolution pass over an ordered list of records,
// sequentially and rate limited. Output order always matches input order
// and every input produces exactly one output; a record-level fault is
// contained and recorded, never fatal to the pass.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/citeseek/pkg/types"
)

// Outcome classifies one record's resolution for tallying.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
	OutcomeFailed  Outcome = "failed"
)

// Progress is one progress callback payload. Callbacks fire after each
// record and once more with Final set after the pass completes.
type Progress struct {
	Current int
	Total   int
	Title   string
	Method  string
	Outcome Outcome
	Final   bool

	Success int
	Partial int
	Failed  int
}

// ProgressFunc receives progress updates. A nil callback is allowed.
type ProgressFunc func(Progress)

// RecordResolver resolves one record. It must always return a result.
type RecordResolver interface {
	Resolve(ctx context.Context, rec types.Record) types.EnrichedRecord
}

const defaultRequestDelay = time.Second

// Runner executes sequential batch passes.
type Runner struct {
	resolver RecordResolver
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// NewRunner builds a runner spacing record resolutions by the configured
// delay (default 1s). The spacing is fixed per record, independent of
// which providers end up being queried.
func NewRunner(r RecordResolver, cfg types.BatchConfig, log zerolog.Logger) *Runner {
	delay := cfg.RequestDelay
	if delay <= 0 {
		delay = defaultRequestDelay
	}
	return &Runner{
		resolver: r,
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
		log:      log,
	}
}

// Run resolves every record in order and returns the tallied result.
// Cancelling the context stops the pass early; records processed so far
// are still returned.
func (r *Runner) Run(ctx context.Context, records []types.Record, onProgress ProgressFunc) types.BatchResult {
	result := types.BatchResult{Records: make([]types.EnrichedRecord, 0, len(records))}

	for i, rec := range records {
		if err := r.limiter.Wait(ctx); err != nil {
			r.log.Warn().Err(err).Int("processed", i).Msg("batch pass cancelled")
			break
		}

		enriched := r.resolveOne(ctx, rec)
		outcome := classifyOutcome(enriched)
		switch outcome {
		case OutcomeSuccess:
			result.Success++
		case OutcomePartial:
			result.Partial++
		default:
			result.Failed++
		}
		result.Records = append(result.Records, enriched)

		r.log.Info().
			Str("title", rec.Title).
			Str("method", enriched.Method).
			Str("outcome", string(outcome)).
			Float64("confidence", enriched.Confidence).
			Msg("record processed")

		if onProgress != nil {
			onProgress(Progress{
				Current: i + 1,
				Total:   len(records),
				Title:   rec.Title,
				Method:  enriched.Method,
				Outcome: outcome,
				Success: result.Success,
				Partial: result.Partial,
				Failed:  result.Failed,
			})
		}
	}

	if onProgress != nil {
		onProgress(Progress{
			Current: len(result.Records),
			Total:   len(records),
			Final:   true,
			Success: result.Success,
			Partial: result.Partial,
			Failed:  result.Failed,
		})
	}

	return result
}

// resolveOne contains record-level faults. A panicking resolver poisons
// only its own record.
func (r *Runner) resolveOne(ctx context.Context, rec types.Record) (out types.EnrichedRecord) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Str("title", rec.Title).Interface("panic", p).Msg("resolver panicked")
			out = types.EnrichedRecord{
				Record:     rec,
				Method:     "error",
				Resolution: types.Unresolved,
				Error:      fmt.Sprintf("resolver panic: %v", p),
			}
		}
	}()
	return r.resolver.Resolve(ctx, rec)
}

// classifyOutcome tallies one enriched record. Success requires authors
// plus at least one substantive field (an identifier, an abstract, or a
// venue); partial means something useful arrived but not enough to cite
// confidently; failed means resolution produced nothing.
func classifyOutcome(e types.EnrichedRecord) Outcome {
	if e.Error != "" || e.Resolution == types.Unresolved {
		return OutcomeFailed
	}

	hasIdent := e.DOI != "" || e.Identifier != ""
	hasAuthors := len(e.Authors) > 0

	if hasAuthors && (hasIdent || e.Abstract != "" || e.Venue != "") {
		return OutcomeSuccess
	}
	if hasAuthors || hasIdent || e.Abstract != "" {
		return OutcomePartial
	}
	return OutcomeFailed
}
