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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/relgraph/pkg/logging"
	"github.com/AleutianAI/relgraph/services/network/filter"
	"github.com/AleutianAI/relgraph/services/network/graph"
	"github.com/AleutianAI/relgraph/services/network/telemetry"
)

var (
	filterSnapshotPath string
	filterCriteriaPath string
	filterCriteriaDir  string
	filterOutPath      string
	filterOutDir       string
	filterPretty       bool
	filterParallel     int
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply filter criteria to a graph snapshot",
	Long: `Loads a graph snapshot, applies filter criteria, and writes the
matching subgraph as JSON.

Single mode (--criteria) reads one criteria file and writes one result.
Batch mode (--criteria-dir) applies every criteria file in a directory
against the same snapshot, writing one result per input file. Batch runs
are independent: the snapshot is loaded once and shared read-only.`,
	Example: `  relgraph filter --snapshot snap.json --criteria query.json --pretty
  relgraph filter --snapshot snap.json --criteria-dir queries/ --out-dir results/ --parallel 8`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterSnapshotPath, "snapshot", "", "path to the snapshot JSON file (required)")
	filterCmd.Flags().StringVar(&filterCriteriaPath, "criteria", "", "path to a criteria file (JSON or YAML)")
	filterCmd.Flags().StringVar(&filterCriteriaDir, "criteria-dir", "", "directory of criteria files for batch mode")
	filterCmd.Flags().StringVar(&filterOutPath, "out", "", "result path for single mode (default stdout)")
	filterCmd.Flags().StringVar(&filterOutDir, "out-dir", "", "result directory for batch mode (default alongside criteria)")
	filterCmd.Flags().BoolVar(&filterPretty, "pretty", false, "indent result JSON")
	filterCmd.Flags().IntVar(&filterParallel, "parallel", 4, "maximum concurrent batch runs")
	_ = filterCmd.MarkFlagRequired("snapshot")
	filterCmd.MarkFlagsOneRequired("criteria", "criteria-dir")
	filterCmd.MarkFlagsMutuallyExclusive("criteria", "criteria-dir")
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(config.LogLevel),
		Service: "relgraph",
		JSON:    config.LogJSON,
	})
	defer logger.Close()

	shutdown, err := telemetry.Init(ctx, config.Telemetry)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	snap, err := loadSnapshotFile(ctx, filterSnapshotPath)
	if err != nil {
		return err
	}

	engine := filter.NewEngine(filter.WithLogger(logger.Slog()))

	if filterCriteriaDir != "" {
		return runFilterBatch(ctx, engine, snap, logger)
	}

	criteria, err := loadCriteriaFile(filterCriteriaPath)
	if err != nil {
		return err
	}
	result, err := engine.Filter(ctx, snap, criteria)
	if err != nil {
		return err
	}
	return writeResult(result, filterOutPath)
}

// runFilterBatch applies every criteria file in the batch directory against
// the shared snapshot. Runs are concurrent up to --parallel; the first
// failure cancels the remaining runs.
func runFilterBatch(ctx context.Context, engine *filter.Engine, snap *graph.Snapshot, logger *logging.Logger) error {
	entries, err := os.ReadDir(filterCriteriaDir)
	if err != nil {
		return fmt.Errorf("read criteria dir %s: %w", filterCriteriaDir, err)
	}

	outDir := filterOutDir
	if outDir == "" {
		outDir = filterCriteriaDir
	}
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("create out dir %s: %w", outDir, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(filterParallel)

	ran := 0
	for _, entry := range entries {
		if entry.IsDir() || !isCriteriaFile(entry.Name()) {
			continue
		}
		ran++
		name := entry.Name()
		g.Go(func() error {
			criteria, err := loadCriteriaFile(filepath.Join(filterCriteriaDir, name))
			if err != nil {
				return err
			}
			result, err := engine.Filter(gctx, snap, criteria)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			out := filepath.Join(outDir, resultName(name))
			return writeResult(result, out)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("batch filter complete", "criteria_files", ran, "out_dir", outDir)
	return nil
}

// loadSnapshotFile reads and freezes a snapshot from a JSON file.
func loadSnapshotFile(ctx context.Context, path string) (*graph.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap, err := graph.LoadSnapshot(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return snap, nil
}

// loadCriteriaFile parses a criteria file, choosing the codec by extension
// (.yaml/.yml use YAML, everything else JSON).
func loadCriteriaFile(path string) (filter.Criteria, error) {
	var criteria filter.Criteria

	data, err := os.ReadFile(path)
	if err != nil {
		return criteria, fmt.Errorf("read criteria %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &criteria)
	default:
		err = json.Unmarshal(data, &criteria)
	}
	if err != nil {
		return criteria, fmt.Errorf("parse criteria %s: %w", path, err)
	}
	return criteria, nil
}

// writeResult marshals the result to the given path, or stdout when the
// path is empty or "-".
func writeResult(result *filter.Result, path string) error {
	var (
		data []byte
		err  error
	)
	if filterPretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("write result %s: %w", path, err)
	}
	return nil
}

func isCriteriaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return !strings.HasSuffix(name, ".result.json")
	default:
		return false
	}
}

// resultName maps a criteria filename to its result filename.
func resultName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + ".result.json"
}
