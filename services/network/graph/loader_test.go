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
	"strings"
	"testing"
)

func TestLoadSnapshot(t *testing.T) {
	payload := `{
	  "nodes": [
	    {"id": "cons1", "type": "CONSULTANT", "properties": {"name": "Alpha Advisors"}},
	    {"id": "co1", "type": "COMPANY", "properties": {"name": "Acme", "region": "EMEA", "active": true, "score": 4.5}},
	    {"id": "p1", "type": "PRODUCT", "properties": {"name": "Global Equity", "asset_class": "Equity", "note": null}}
	  ],
	  "relationships": [
	    {"id": "r1", "type": "OWNS", "sourceId": "co1", "targetId": "p1", "properties": {"mandate_status": "Active"}},
	    {"id": "r2", "type": "RATES", "sourceId": "cons1", "targetId": "p1", "properties": {"rankgroup": "Positive", "rankvalue": 1}},
	    {"id": "r3", "type": "COVERS", "sourceId": "ghost", "targetId": "co1", "properties": {}}
	  ]
	}`

	snap, err := ParseSnapshot(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if !snap.IsFrozen() {
		t.Fatal("loaded snapshot is not frozen")
	}

	if got := snap.NodeCount(); got != 3 {
		t.Errorf("NodeCount = %d, want 3", got)
	}
	if got := snap.RelationshipCount(); got != 2 {
		t.Errorf("RelationshipCount = %d, want 2 (dangling r3 skipped)", got)
	}
	if got := snap.DanglingRelationships(); got != 1 {
		t.Errorf("DanglingRelationships = %d, want 1", got)
	}

	co := snap.NodeByID("co1")
	if co == nil {
		t.Fatal("NodeByID(co1) = nil")
	}
	if got := co.Properties["active"]; got != "true" {
		t.Errorf("bool property stringified to %q, want true", got)
	}
	if got := co.Properties["score"]; got != "4.5" {
		t.Errorf("number property stringified to %q, want 4.5", got)
	}

	p := snap.NodeByID("p1")
	if _, present := p.Properties["note"]; present {
		t.Error("null property was not dropped")
	}

	rates := snap.RelationshipsOfType(RelTypeRates)
	if len(rates) != 1 || rates[0].RankValue() != "1" {
		t.Errorf("RATES relationship = %+v, want rankvalue 1", rates)
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantSub string
	}{
		{
			name:    "malformed JSON",
			payload: `{"nodes": [`,
			wantSub: "decode snapshot",
		},
		{
			name:    "unknown node type",
			payload: `{"nodes": [{"id": "x1", "type": "WIDGET", "properties": {}}]}`,
			wantSub: `node "x1": unknown node type`,
		},
		{
			name: "unknown relationship type",
			payload: `{"nodes": [{"id": "a", "type": "COMPANY", "properties": {}},
			                      {"id": "b", "type": "PRODUCT", "properties": {}}],
			            "relationships": [{"id": "r1", "type": "LIKES", "sourceId": "a", "targetId": "b", "properties": {}}]}`,
			wantSub: `relationship "r1": unknown relationship type`,
		},
		{
			name:    "nested property value",
			payload: `{"nodes": [{"id": "a", "type": "COMPANY", "properties": {"tags": ["x"]}}]}`,
			wantSub: "unsupported value type",
		},
		{
			name: "duplicate node ID",
			payload: `{"nodes": [{"id": "a", "type": "COMPANY", "properties": {}},
			                      {"id": "a", "type": "COMPANY", "properties": {}}]}`,
			wantSub: "duplicate node",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot(context.Background(), []byte(tt.payload))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestLoadSnapshotEmpty(t *testing.T) {
	snap, err := ParseSnapshot(context.Background(), []byte(`{}`))
	if err != nil {
		t.Fatalf("ParseSnapshot(empty): %v", err)
	}
	if snap.NodeCount() != 0 || snap.RelationshipCount() != 0 {
		t.Errorf("empty payload produced %d nodes, %d relationships",
			snap.NodeCount(), snap.RelationshipCount())
	}
}
