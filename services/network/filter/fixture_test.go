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

// testNode constructs a node with a display name plus extra properties as
// alternating key/value pairs.
func testNode(id string, t graph.NodeType, name string, kv ...string) *graph.Node {
	props := map[string]string{graph.PropName: name}
	for i := 0; i+1 < len(kv); i += 2 {
		props[kv[i]] = kv[i+1]
	}
	return &graph.Node{ID: id, Type: t, Properties: props}
}

// testRel constructs a relationship with extra properties as alternating
// key/value pairs.
func testRel(id string, t graph.RelType, src, dst string, kv ...string) *graph.Relationship {
	props := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		props[kv[i]] = kv[i+1]
	}
	return &graph.Relationship{ID: id, Type: t, SourceID: src, TargetID: dst, Properties: props}
}

// buildSnapshot assembles and freezes a snapshot, failing the test on any
// build error.
func buildSnapshot(t *testing.T, nodes []*graph.Node, rels []*graph.Relationship) *graph.Snapshot {
	t.Helper()
	snap := graph.NewSnapshot()
	for _, n := range nodes {
		if err := snap.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	for _, r := range rels {
		if err := snap.AddRelationship(r); err != nil {
			t.Fatalf("AddRelationship(%s): %v", r.ID, err)
		}
	}
	snap.Freeze()
	return snap
}

// networkFixture is a small but fully-featured relationship network:
//
//	cons1 "Alpha Advisors" -Employs-> fc1 "Dana Reyes" -Covers-> co1 "Acme"
//	cons2 "Beta Consulting" -Employs-> fc2 "Evan Cole" -Covers-> co2 "Globex"
//	co1 -Owns-> p1 "Global Equity", co1 -Owns-> ip1 "Legacy Fund"
//	co2 -Owns-> p2 "Core Bond"
//	ip1 -Recommends-> p2
//	cons1 -Rates-> p1 (Positive), cons2 -Rates-> p1 (Negative),
//	cons1 -Rates-> ip1 (Neutral)
//	co3 "Initech" is isolated.
func networkFixture(t *testing.T) *graph.Snapshot {
	t.Helper()
	nodes := []*graph.Node{
		testNode("cons1", graph.NodeTypeConsultant, "Alpha Advisors",
			graph.PropPCA, "Morgan Blake",
			graph.PropConsultantAdvisor, "Riley Quinn"),
		testNode("cons2", graph.NodeTypeConsultant, "Beta Consulting"),
		testNode("fc1", graph.NodeTypeFieldConsultant, "Dana Reyes"),
		testNode("fc2", graph.NodeTypeFieldConsultant, "Evan Cole"),
		testNode("co1", graph.NodeTypeCompany, "Acme",
			graph.PropRegion, "EMEA",
			graph.PropChannel, "Institutional",
			graph.PropPCA, "Jordan Smith",
			graph.PropACA, "Pat Lee"),
		testNode("co2", graph.NodeTypeCompany, "Globex",
			graph.PropRegion, "AMER",
			graph.PropChannel, "Retail"),
		testNode("co3", graph.NodeTypeCompany, "Initech"),
		testNode("p1", graph.NodeTypeProduct, "Global Equity",
			graph.PropAssetClass, "Equity"),
		testNode("p2", graph.NodeTypeProduct, "Core Bond",
			graph.PropAssetClass, "Fixed Income"),
		testNode("ip1", graph.NodeTypeIncumbentProduct, "Legacy Fund",
			graph.PropAssetClass, "Equity"),
	}
	rels := []*graph.Relationship{
		testRel("e1", graph.RelTypeEmploys, "cons1", "fc1"),
		testRel("e2", graph.RelTypeEmploys, "cons2", "fc2"),
		testRel("v1", graph.RelTypeCovers, "fc1", "co1",
			graph.PropLevelOfInfluence, "High"),
		testRel("v2", graph.RelTypeCovers, "fc2", "co2",
			graph.PropLevelOfInfluence, "Low"),
		testRel("o1", graph.RelTypeOwns, "co1", "p1",
			graph.PropMandateStatus, "Active"),
		testRel("o2", graph.RelTypeOwns, "co2", "p2",
			graph.PropMandateStatus, "Terminated"),
		testRel("o3", graph.RelTypeOwns, "co1", "ip1",
			graph.PropMandateStatus, "Active"),
		testRel("rec1", graph.RelTypeRecommends, "ip1", "p2"),
		testRel("rt1", graph.RelTypeRates, "cons1", "p1",
			graph.PropRankGroup, "Positive", graph.PropRankValue, "1"),
		testRel("rt2", graph.RelTypeRates, "cons2", "p1",
			graph.PropRankGroup, "Negative", graph.PropRankValue, "3"),
		testRel("rt3", graph.RelTypeRates, "cons1", "ip1",
			graph.PropRankGroup, "Neutral", graph.PropRankValue, "2"),
	}
	return buildSnapshot(t, nodes, rels)
}

// resultNodeIDs extracts the node ID set from a result.
func resultNodeIDs(r *Result) map[string]bool {
	ids := make(map[string]bool, len(r.Nodes))
	for _, n := range r.Nodes {
		ids[n.ID] = true
	}
	return ids
}

// resultRelIDs extracts the relationship ID set from a result.
func resultRelIDs(r *Result) map[string]bool {
	ids := make(map[string]bool, len(r.Relationships))
	for _, rel := range r.Relationships {
		ids[rel.ID] = true
	}
	return ids
}

// findResultNode returns the result node with the given ID, or nil.
func findResultNode(r *Result, id string) *ResultNode {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i]
		}
	}
	return nil
}
