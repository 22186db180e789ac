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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspectSnapshotPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print summary statistics for a graph snapshot",
	Long: `Loads a graph snapshot and prints node and relationship counts,
broken down by type, plus the number of dangling relationships skipped
during loading.`,
	Example: `  relgraph inspect --snapshot snap.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshotFile(cmd.Context(), inspectSnapshotPath)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(snap.Stats(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		data = append(data, '\n')
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSnapshotPath, "snapshot", "", "path to the snapshot JSON file (required)")
	_ = inspectCmd.MarkFlagRequired("snapshot")
}
