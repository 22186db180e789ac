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
	"testing"

	"github.com/AleutianAI/relgraph/services/network/graph"
)

// retainAll builds a retained set holding every fixture node.
func retainAll(snap *graph.Snapshot) retainedSet {
	retained := make(retainedSet)
	retained.add(snap.Nodes())
	return retained
}

func relIDSet(rels []*graph.Relationship) map[string]bool {
	out := make(map[string]bool, len(rels))
	for _, r := range rels {
		out[r.ID] = true
	}
	return out
}

func TestPruneRelationshipsEndpoints(t *testing.T) {
	snap := networkFixture(t)

	// Retain everything except co2; its edges must vanish.
	retained := make(retainedSet)
	for _, n := range snap.Nodes() {
		if n.ID != "co2" {
			retained[n.ID] = n
		}
	}

	pruned := pruneRelationships(snap, retained, newEligibility(Criteria{}.Normalize()))
	edges := relIDSet(pruned.edges)

	for _, dropped := range []string{"v2", "o2"} {
		if edges[dropped] {
			t.Errorf("edge %s retained despite missing endpoint", dropped)
		}
	}
	for _, kept := range []string{"e1", "e2", "v1", "o1", "o3", "rec1"} {
		if !edges[kept] {
			t.Errorf("edge %s missing", kept)
		}
	}
}

func TestPruneRelationshipsRatesDiverted(t *testing.T) {
	snap := networkFixture(t)
	pruned := pruneRelationships(snap, retainAll(snap), newEligibility(Criteria{}.Normalize()))

	if got := relIDSet(pruned.edges); got["rt1"] || got["rt2"] || got["rt3"] {
		t.Error("Rates relationship emitted as edge")
	}
	if got := len(pruned.rates); got != 3 {
		t.Errorf("internal rates = %d, want 3", got)
	}
}

func TestPruneRelationshipsMandateFilter(t *testing.T) {
	snap := networkFixture(t)
	pruned := pruneRelationships(snap, retainAll(snap),
		newEligibility(Criteria{MandateStatuses: []string{"Active"}}.Normalize()))
	edges := relIDSet(pruned.edges)

	if !edges["o1"] || !edges["o3"] {
		t.Error("Active Owns edges dropped")
	}
	if edges["o2"] {
		t.Error("Terminated Owns edge retained under Active filter")
	}
	// Covers edges are untouched by the mandate filter.
	if !edges["v1"] || !edges["v2"] {
		t.Error("mandate filter leaked onto Covers edges")
	}
}

func TestPruneRelationshipsMandateFilterLenient(t *testing.T) {
	snap := buildSnapshot(t,
		[]*graph.Node{
			testNode("co1", graph.NodeTypeCompany, "Acme"),
			testNode("p1", graph.NodeTypeProduct, "Global Equity"),
		},
		[]*graph.Relationship{
			// No mandate_status property: passes any mandate filter.
			testRel("o1", graph.RelTypeOwns, "co1", "p1"),
		},
	)
	pruned := pruneRelationships(snap, retainAll(snap),
		newEligibility(Criteria{MandateStatuses: []string{"Active"}}.Normalize()))
	if len(pruned.edges) != 1 {
		t.Error("Owns edge lacking mandate_status dropped; filter must be lenient")
	}
}

func TestPruneRelationshipsInfluenceFilter(t *testing.T) {
	snap := networkFixture(t)
	pruned := pruneRelationships(snap, retainAll(snap),
		newEligibility(Criteria{InfluenceLevels: []string{"High"}}.Normalize()))
	edges := relIDSet(pruned.edges)

	if !edges["v1"] {
		t.Error("High-influence Covers edge dropped")
	}
	if edges["v2"] {
		t.Error("Low-influence Covers edge retained under High filter")
	}
	if !edges["o1"] || !edges["o2"] {
		t.Error("influence filter leaked onto Owns edges")
	}
}

func TestPruneOrphans(t *testing.T) {
	snap := networkFixture(t)
	retained := retainAll(snap)
	pruned := pruneRelationships(snap, retained, newEligibility(Criteria{}.Normalize()))

	kept := pruneOrphans(retained, pruned)
	if _, ok := kept["co3"]; ok {
		t.Error("isolated co3 survived the orphan scan")
	}
	if len(kept) != len(retained)-1 {
		t.Errorf("kept %d nodes, want %d", len(kept), len(retained)-1)
	}
}

func TestPruneOrphansRatesCountAsConnectivity(t *testing.T) {
	// A consultant held in the graph only by a Rates edge is connected.
	snap := buildSnapshot(t,
		[]*graph.Node{
			testNode("cons1", graph.NodeTypeConsultant, "Alpha Advisors"),
			testNode("p1", graph.NodeTypeProduct, "Global Equity"),
		},
		[]*graph.Relationship{
			testRel("rt1", graph.RelTypeRates, "cons1", "p1",
				graph.PropRankGroup, "Positive"),
		},
	)
	retained := retainAll(snap)
	pruned := pruneRelationships(snap, retained, newEligibility(Criteria{}.Normalize()))
	if len(pruned.edges) != 0 {
		t.Fatalf("Rates emitted as edge: %v", pruned.edges)
	}

	kept := pruneOrphans(retained, pruned)
	if _, ok := kept["cons1"]; !ok {
		t.Error("cons1 orphaned despite its Rates edge")
	}
	if _, ok := kept["p1"]; !ok {
		t.Error("p1 orphaned despite its Rates edge")
	}
}
