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
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "relgraph",
	Short: "Deterministic subgraph filtering over business-relationship graphs",
	Long: `relgraph loads an immutable graph snapshot of consultants, field
consultants, companies, and products, applies declarative filter criteria,
and emits the matching subgraph as JSON.

Filtering is deterministic and side-effect free: the same snapshot and
criteria always produce the same result, and the snapshot is never mutated.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "relgraph.yaml",
		"path to optional YAML config file")

	// Flag parse failures are usage errors and exit 2, like criteria
	// validation failures.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(inspectCmd)
}
