// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package filter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/relgraph/services/network/graph"
	"github.com/AleutianAI/relgraph/services/network/telemetry"
)

// EngineOptions configures Engine behavior.
type EngineOptions struct {
	// Logger receives one summary line per filter request.
	Logger *slog.Logger

	// Now supplies the clock, overridable in tests.
	Now func() time.Time
}

// DefaultEngineOptions returns sensible defaults for engine configuration.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Logger: slog.Default(),
		Now:    time.Now,
	}
}

// EngineOption is a functional option for configuring Engine.
type EngineOption func(*EngineOptions)

// WithLogger sets the logger used for per-request summary lines.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *EngineOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock sets the time source. Used by tests for deterministic
// durations.
func WithClock(now func() time.Time) EngineOption {
	return func(o *EngineOptions) {
		if now != nil {
			o.Now = now
		}
	}
}

// Engine is the subgraph filtering engine.
//
// Thread Safety:
//
//	Engine is stateless between calls and safe for concurrent use.
//	Concurrent Filter calls against the same frozen snapshot require no
//	locking: the snapshot is read-only and all working sets are call-local.
type Engine struct {
	options EngineOptions
}

// NewEngine creates a filtering engine.
//
// Example:
//
//	engine := filter.NewEngine(filter.WithLogger(logger))
//	result, err := engine.Filter(ctx, snap, criteria)
func NewEngine(opts ...EngineOption) *Engine {
	options := DefaultEngineOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Engine{options: options}
}

// Filter computes the minimal connected subgraph of snap satisfying the
// criteria.
//
// Description:
//
//	Runs the full pipeline: validate, normalize, resolve anchors, expand,
//	prune relationships, prune orphans, assemble. The snapshot is never
//	mutated and no state survives the call. Identity filters matching
//	nothing produce a valid empty Result, not an error.
//
// Inputs:
//
//	ctx - Carries the trace span; never used to abort mid-traversal
//	      (execution is bounded and needs no cancellation).
//	snap - A frozen snapshot. Must not be nil.
//	criteria - The declarative filter set; normalized internally.
//
// Outputs:
//
//	*Result - Retained nodes, emitted relationships (Rates excluded),
//	          and summary statistics.
//	error - *ValidationError for malformed criteria, ErrNilSnapshot or
//	        graph.ErrSnapshotNotFrozen for unusable snapshots.
func (e *Engine) Filter(ctx context.Context, snap *graph.Snapshot, criteria Criteria) (*Result, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	if !snap.IsFrozen() {
		return nil, graph.ErrSnapshotNotFrozen
	}

	start := e.options.Now()
	requestID := uuid.NewString()

	ctx, span := startFilterSpan(ctx, requestID, snap.NodeCount(), snap.RelationshipCount())
	defer span.End()

	norm := criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		telemetry.RecordError(span, err)
		recordFilterMetrics(ctx, norm.Mode, e.options.Now().Sub(start), Statistics{}, false)
		return nil, err
	}

	elig := newEligibility(norm)
	telemetry.AddSpanEvent(span, "criteria normalized")

	families := resolveAnchors(snap, norm, elig)
	telemetry.AddSpanEvent(span, "anchors resolved")

	retained := expand(snap, families, elig)
	telemetry.AddSpanEvent(span, "expansion complete")

	pruned := pruneRelationships(snap, retained, elig)
	telemetry.AddSpanEvent(span, "relationships pruned")

	if norm.Mode == ModeGeneral && !norm.ShowInactive {
		retained = pruneOrphans(retained, pruned)
		telemetry.AddSpanEvent(span, "orphans pruned")
	}

	result := assemble(snap, retained, pruned, norm, e.options.Now().Sub(start))
	setFilterSpanResult(span, norm.Mode, result.Statistics)
	telemetry.SetSpanOK(span)
	recordFilterMetrics(ctx, norm.Mode, e.options.Now().Sub(start), result.Statistics, true)

	e.options.Logger.InfoContext(ctx, "filter request complete",
		"request_id", requestID,
		"mode", norm.Mode.String(),
		"anchor_families", len(families),
		"input_nodes", result.Statistics.InputNodes,
		"retained_nodes", result.Statistics.RetainedNodes,
		"retained_relationships", result.Statistics.RetainedRelationships,
		"ratings_embedded", result.Statistics.RatingsEmbedded,
		"duration_micro", result.Statistics.DurationMicro,
	)

	return result, nil
}
