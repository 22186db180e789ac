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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/relgraph/services/network/telemetry"
)

// scopeName is the instrumentation scope for filter operations.
const scopeName = "aleutian.network.filter"

// Package-level meter for filter operations.
var meter = otel.Meter(scopeName)

// Metrics for filter operations.
var (
	filterLatency  metric.Float64Histogram
	filterTotal    metric.Int64Counter
	nodesRetained  metric.Int64Histogram
	relsRetained   metric.Int64Histogram
	reductionRatio metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		filterLatency, err = meter.Float64Histogram(
			"network_filter_duration_seconds",
			metric.WithDescription("Duration of filter operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filterTotal, err = meter.Int64Counter(
			"network_filter_total",
			metric.WithDescription("Total number of filter operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesRetained, err = meter.Int64Histogram(
			"network_filter_nodes_retained",
			metric.WithDescription("Number of nodes retained per filter operation"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		relsRetained, err = meter.Int64Histogram(
			"network_filter_relationships_retained",
			metric.WithDescription("Number of relationships retained per filter operation"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		reductionRatio, err = meter.Float64Histogram(
			"network_filter_node_reduction_ratio",
			metric.WithDescription("Fraction of input nodes removed per filter operation"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordFilterMetrics records metrics for one filter operation.
func recordFilterMetrics(ctx context.Context, mode Mode, duration time.Duration, stats Statistics, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Bool("success", success),
		attribute.String("mode", mode.String()),
	)

	filterLatency.Record(ctx, duration.Seconds(), attrs)
	filterTotal.Add(ctx, 1, attrs)

	if success {
		nodesRetained.Record(ctx, int64(stats.RetainedNodes))
		relsRetained.Record(ctx, int64(stats.RetainedRelationships))
		reductionRatio.Record(ctx, stats.NodeReduction)
	}
}

// startFilterSpan creates a span for a filter operation.
func startFilterSpan(ctx context.Context, requestID string, inputNodes, inputRels int) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, scopeName, "Engine.Filter",
		trace.WithAttributes(
			attribute.String("filter.request_id", requestID),
			attribute.Int("filter.input_nodes", inputNodes),
			attribute.Int("filter.input_relationships", inputRels),
		),
	)
}

// setFilterSpanResult sets the result attributes on a filter span.
func setFilterSpanResult(span trace.Span, mode Mode, stats Statistics) {
	span.SetAttributes(
		attribute.String("filter.mode", mode.String()),
		attribute.Int("filter.retained_nodes", stats.RetainedNodes),
		attribute.Int("filter.retained_relationships", stats.RetainedRelationships),
		attribute.Int("filter.ratings_embedded", stats.RatingsEmbedded),
	)
}
