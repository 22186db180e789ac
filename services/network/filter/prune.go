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

import "github.com/AleutianAI/relgraph/services/network/graph"

// prunedRelationships holds the relationship survivors of the induced
// subgraph, split by role: edges are emitted in the result, rates stay
// internal and feed rating aggregation and connectivity only.
type prunedRelationships struct {
	edges []*graph.Relationship
	rates []*graph.Relationship
}

// pruneRelationships retains a relationship iff both endpoints survived
// expansion, then applies the edge-attribute filters.
//
// The filters mirror the gate used during expansion hops: mandateStatuses
// constrains Owns relationships only and influenceLevels constrains Covers
// relationships only, both lenient (an edge lacking the filtered attribute
// passes). Rates relationships are never emitted as edges but are retained
// internally for rating aggregation and the orphan scan (a node held in the
// graph only by a rating is still connected).
func pruneRelationships(snap *graph.Snapshot, retained retainedSet, elig eligibility) prunedRelationships {
	var out prunedRelationships
	for _, rel := range snap.Relationships() {
		if _, ok := retained[rel.SourceID]; !ok {
			continue
		}
		if _, ok := retained[rel.TargetID]; !ok {
			continue
		}

		if rel.Type == graph.RelTypeRates {
			out.rates = append(out.rates, rel)
			continue
		}
		if !elig.allowsEdge(rel) {
			continue
		}

		out.edges = append(out.edges, rel)
	}
	return out
}

// pruneOrphans drops retained nodes with no surviving relationship.
//
// Runs only in general mode with showInactive=false. Focused mode skips
// the scan entirely: anchors and their expansions are connected by
// construction. The touched set includes internally retained Rates
// relationships, which participate in connectivity even though they are
// not emitted as edges.
func pruneOrphans(retained retainedSet, pruned prunedRelationships) retainedSet {
	touched := make(map[string]struct{}, 2*(len(pruned.edges)+len(pruned.rates)))
	for _, rel := range pruned.edges {
		touched[rel.SourceID] = struct{}{}
		touched[rel.TargetID] = struct{}{}
	}
	for _, rel := range pruned.rates {
		touched[rel.SourceID] = struct{}{}
		touched[rel.TargetID] = struct{}{}
	}

	kept := make(retainedSet, len(touched))
	for id, n := range retained {
		if _, ok := touched[id]; ok {
			kept[id] = n
		}
	}
	return kept
}
