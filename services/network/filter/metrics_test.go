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
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestFilterMetricsModeOnValidationFailure verifies that a rejected request
// is counted under the mode derived from the submitted criteria, not a
// hardcoded one: focused-shaped criteria that fail validation must show up
// as mode="focused", success=false.
func TestFilterMetricsModeOnValidationFailure(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	engine := NewEngine()
	snap := chainSnapshot(t)

	_, err := engine.Filter(context.Background(), snap, Criteria{
		ConsultantIds: []string{"C1"},
		NodeTypes:     []string{"WIDGET"},
	})
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "network_filter_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				mode, _ := dp.Attributes.Value(attribute.Key("mode"))
				success, _ := dp.Attributes.Value(attribute.Key("success"))
				if mode.AsString() == "focused" && !success.AsBool() {
					found = true
				}
			}
		}
	}
	require.True(t, found,
		"rejected focused criteria must be counted with mode=focused, success=false")
}
