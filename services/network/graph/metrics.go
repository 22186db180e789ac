// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

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

// scopeName is the instrumentation scope for snapshot operations.
const scopeName = "aleutian.network.graph"

// Package-level meter for snapshot operations.
var meter = otel.Meter(scopeName)

// Metrics for snapshot loading.
var (
	loadLatency   metric.Float64Histogram
	loadTotal     metric.Int64Counter
	nodesLoaded   metric.Int64Histogram
	relsLoaded    metric.Int64Histogram
	danglingTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		loadLatency, err = meter.Float64Histogram(
			"network_snapshot_load_duration_seconds",
			metric.WithDescription("Duration of snapshot load operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		loadTotal, err = meter.Int64Counter(
			"network_snapshot_load_total",
			metric.WithDescription("Total number of snapshot load operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesLoaded, err = meter.Int64Histogram(
			"network_snapshot_nodes_loaded",
			metric.WithDescription("Number of nodes loaded per snapshot"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		relsLoaded, err = meter.Int64Histogram(
			"network_snapshot_relationships_loaded",
			metric.WithDescription("Number of relationships loaded per snapshot"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		danglingTotal, err = meter.Int64Counter(
			"network_snapshot_dangling_relationships_total",
			metric.WithDescription("Relationships skipped because an endpoint was missing"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordLoad records metrics for a snapshot load operation.
func recordLoad(ctx context.Context, duration time.Duration, nodeCount, relCount, dangling int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("success", success))

	loadLatency.Record(ctx, duration.Seconds(), attrs)
	loadTotal.Add(ctx, 1, attrs)

	if success {
		nodesLoaded.Record(ctx, int64(nodeCount))
		relsLoaded.Record(ctx, int64(relCount))
		danglingTotal.Add(ctx, int64(dangling))
	}
}

// startLoadSpan creates a span for a snapshot load operation.
func startLoadSpan(ctx context.Context) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, scopeName, "Snapshot.Load")
}
