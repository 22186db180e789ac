// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry provides OpenTelemetry-based observability for the
// network filtering engine.
//
// This package initializes the OTel SDK with opinionated defaults for
// tracing and metrics. The engine and graph packages instrument themselves
// through the global otel.Tracer()/otel.Meter(); embedders and the CLI pick
// the backend by configuring exporters here, never by changing engine code.
//
// # Trace Backend
//
// stdout (pretty-printed spans) for CLI debugging, or none. The engine has
// no network surface, so no push exporter is configured here; embedders
// running inside a service wire their own provider before calling the
// engine.
//
// # Metrics Backend (default: Prometheus registry)
//
// Metrics default to a Prometheus registry exposed via Registry(); the
// embedding process decides how to scrape or dump it. A stdout exporter is
// available for one-shot CLI runs.
//
// # Usage
//
//	cfg := telemetry.DefaultConfig()
//	shutdown, err := telemetry.Init(ctx, cfg)
//	if err != nil {
//	    return fmt.Errorf("init telemetry: %w", err)
//	}
//	defer shutdown(ctx)
//
// # Environment Variables
//
//   - OTEL_TRACES_EXPORTER: stdout or none (default: none)
//   - OTEL_METRICS_EXPORTER: prometheus, stdout, or none (default: prometheus)
//   - ALEUTIAN_ENV: environment name (default: development)
//
// # Thread Safety
//
// All exported functions are safe for concurrent use after Init() returns.
package telemetry
