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

// retainedSet is the call-local working set of retained nodes, keyed by ID.
type retainedSet map[string]*graph.Node

// add inserts the nodes into the set.
func (s retainedSet) add(nodes []*graph.Node) {
	for _, n := range nodes {
		s[n.ID] = n
	}
}

// expand grows the anchor families into the final retained node set.
//
// In focused mode the retained set is the union of the per-family closures.
// In general mode (no anchor families) every eligible node is retained;
// disconnected nodes are removed later by the orphan pruner.
//
// Each family closure applies one fixed-depth directional rule per
// originating entity kind. Hops are idempotent set unions, and the entity
// schema is acyclic (Consultant -> FieldConsultant -> Company -> Product ->
// Recommends -> Product), so a single pass per rule suffices; no
// fixed-point iteration is needed.
func expand(snap *graph.Snapshot, families []anchorFamily, elig eligibility) retainedSet {
	retained := make(retainedSet)

	if len(families) == 0 {
		for _, n := range snap.Nodes() {
			if elig.allows(n) {
				retained[n.ID] = n
			}
		}
		return retained
	}

	for _, fam := range families {
		expandFamily(snap, fam, elig, retained)
	}
	return retained
}

// expandFamily applies the traversal rule for one anchor family, adding
// every reached node to the retained set.
func expandFamily(snap *graph.Snapshot, fam anchorFamily, elig eligibility, retained retainedSet) {
	if len(fam.nodes) == 0 {
		// Non-empty filter, zero anchors: contributes nothing, not an error.
		return
	}
	retained.add(fam.nodes)

	switch fam.kind {
	case anchorConsultant, anchorConsultantAdvisor:
		// Consultant -> FieldConsultant -> Company -> products -> recommended.
		fcs := hop(snap, fam.nodes, graph.RelTypeEmploys, true, elig, graph.NodeTypeFieldConsultant)
		cos := hop(snap, fcs, graph.RelTypeCovers, true, elig, graph.NodeTypeCompany)
		prods := hop(snap, cos, graph.RelTypeOwns, true, elig,
			graph.NodeTypeProduct, graph.NodeTypeIncumbentProduct)
		recs := hop(snap, incumbentsOf(prods), graph.RelTypeRecommends, true, elig, graph.NodeTypeProduct)
		retained.add(fcs)
		retained.add(cos)
		retained.add(prods)
		retained.add(recs)

	case anchorCompany, anchorClientAdvisor:
		// Upstream to consultants, downstream to products.
		fcs := hop(snap, fam.nodes, graph.RelTypeCovers, false, elig, graph.NodeTypeFieldConsultant)
		cons := hop(snap, fcs, graph.RelTypeEmploys, false, elig, graph.NodeTypeConsultant)
		prods := hop(snap, fam.nodes, graph.RelTypeOwns, true, elig,
			graph.NodeTypeProduct, graph.NodeTypeIncumbentProduct)
		recs := hop(snap, incumbentsOf(prods), graph.RelTypeRecommends, true, elig, graph.NodeTypeProduct)
		retained.add(fcs)
		retained.add(cons)
		retained.add(prods)
		retained.add(recs)

	case anchorFieldConsultant:
		cons := hop(snap, fam.nodes, graph.RelTypeEmploys, false, elig, graph.NodeTypeConsultant)
		cos := hop(snap, fam.nodes, graph.RelTypeCovers, true, elig, graph.NodeTypeCompany)
		prods := hop(snap, cos, graph.RelTypeOwns, true, elig,
			graph.NodeTypeProduct, graph.NodeTypeIncumbentProduct)
		recs := hop(snap, incumbentsOf(prods), graph.RelTypeRecommends, true, elig, graph.NodeTypeProduct)
		retained.add(cons)
		retained.add(cos)
		retained.add(prods)
		retained.add(recs)

	case anchorProduct:
		// Recommendation edges run both ways from a product anchor:
		// incumbents recommending it, and (if the anchor is an incumbent)
		// the products it recommends. Ownership is then walked backward
		// from the whole product set so recommended products pull in
		// their owners too.
		recIn := hop(snap, fam.nodes, graph.RelTypeRecommends, false, elig, graph.NodeTypeIncumbentProduct)
		recOut := hop(snap, incumbentsOf(fam.nodes), graph.RelTypeRecommends, true, elig, graph.NodeTypeProduct)

		prodSet := make([]*graph.Node, 0, len(fam.nodes)+len(recIn)+len(recOut))
		prodSet = append(prodSet, fam.nodes...)
		prodSet = append(prodSet, recIn...)
		prodSet = append(prodSet, recOut...)

		owners := hop(snap, prodSet, graph.RelTypeOwns, false, elig, graph.NodeTypeCompany)
		fcs := hop(snap, owners, graph.RelTypeCovers, false, elig, graph.NodeTypeFieldConsultant)
		cons := hop(snap, fcs, graph.RelTypeEmploys, false, elig, graph.NodeTypeConsultant)
		retained.add(recIn)
		retained.add(recOut)
		retained.add(owners)
		retained.add(fcs)
		retained.add(cons)
	}
}

// hop performs a single directional relationship lookup from the frontier.
//
// Forward hops follow relationships of type rt from each frontier node to
// its targets; backward hops follow them to sources. Relationships failing
// the edge-attribute filters are never traversed, so a node whose only path
// runs through a filtered edge is never retained. Reached nodes must be one
// of the wanted types and pass the eligibility gate. Duplicates within the
// hop are collapsed.
func hop(snap *graph.Snapshot, frontier []*graph.Node, rt graph.RelType, forward bool,
	elig eligibility, want ...graph.NodeType) []*graph.Node {

	var wanted [graph.NumNodeTypes]bool
	for _, t := range want {
		wanted[t] = true
	}

	seen := make(map[string]struct{})
	var out []*graph.Node
	for _, n := range frontier {
		var rels []*graph.Relationship
		if forward {
			rels = snap.RelationshipsFrom(n.ID)
		} else {
			rels = snap.RelationshipsTo(n.ID)
		}
		for _, rel := range rels {
			if rel.Type != rt {
				continue
			}
			if !elig.allowsEdge(rel) {
				continue
			}
			otherID := rel.TargetID
			if !forward {
				otherID = rel.SourceID
			}
			if _, dup := seen[otherID]; dup {
				continue
			}
			other := snap.NodeByID(otherID)
			if other == nil || !wanted[other.Type] || !elig.allows(other) {
				continue
			}
			seen[otherID] = struct{}{}
			out = append(out, other)
		}
	}
	return out
}

// incumbentsOf filters a node list down to incumbent products.
func incumbentsOf(nodes []*graph.Node) []*graph.Node {
	var out []*graph.Node
	for _, n := range nodes {
		if n.Type == graph.NodeTypeIncumbentProduct {
			out = append(out, n)
		}
	}
	return out
}
