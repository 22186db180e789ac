// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/relgraph/services/network/filter"
	"github.com/AleutianAI/relgraph/services/network/telemetry"
)

// Config is the optional CLI configuration, loaded from a YAML file.
type Config struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogJSON switches stderr logging to JSON format.
	LogJSON bool `yaml:"log_json"`

	// Telemetry configures exporters for tracing and metrics.
	Telemetry telemetry.Config `yaml:"telemetry"`
}

var config = Config{
	LogLevel: "info",
	Telemetry: telemetry.Config{
		ServiceName:    "relgraph",
		ServiceVersion: version,
		Environment:    "development",
		TraceExporter:  "none",
		MetricExporter: "none",
	},
}

// errUsage wraps command-line usage errors (bad flags, unknown commands)
// so they share an exit code with criteria validation failures.
var errUsage = errors.New("usage error")

// exitCode maps an Execute error to the process exit code: 0 on success,
// 2 for usage and criteria validation problems, 1 for runtime failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, filter.ErrInvalidCriteria), errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// loadConfig reads the optional YAML config file. A missing file at the
// default path is fine; a missing file named explicitly is an error.
func loadConfig(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig(configPath, cmd.PersistentFlags().Changed("config"))
	}
}
