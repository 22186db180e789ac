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

// anchorKind identifies which filter family seeded an anchor set. The kind
// selects the expansion rule applied in expand.go.
type anchorKind int

const (
	anchorConsultant anchorKind = iota
	anchorFieldConsultant
	anchorCompany
	anchorProduct
	anchorClientAdvisor
	anchorConsultantAdvisor
)

// String returns the filter family name, used in span attributes.
func (k anchorKind) String() string {
	switch k {
	case anchorConsultant:
		return "consultant"
	case anchorFieldConsultant:
		return "fieldConsultant"
	case anchorCompany:
		return "company"
	case anchorProduct:
		return "product"
	case anchorClientAdvisor:
		return "clientAdvisor"
	case anchorConsultantAdvisor:
		return "consultantAdvisor"
	default:
		return "unknown"
	}
}

// anchorFamily is one filter family's matched anchors, expanded
// independently of the other families.
type anchorFamily struct {
	kind  anchorKind
	nodes []*graph.Node
}

// eligibility gates which nodes may become anchors or survive expansion,
// and which Owns/Covers edges may be traversed or emitted.
//
// The node-type filter is applied before anchor resolution: anchors of an
// excluded type are never seeded and excluded types never survive a hop,
// even when an identity filter would otherwise select them. Attribute
// filters are lenient: a node (or edge) missing the filtered property
// passes.
type eligibility struct {
	types        [graph.NumNodeTypes]bool
	regions      map[string]struct{}
	channels     map[string]struct{}
	assetClasses map[string]struct{}
	mandates     map[string]struct{}
	influences   map[string]struct{}
}

// newEligibility derives the eligibility gate from normalized criteria.
func newEligibility(c Criteria) eligibility {
	return eligibility{
		types:        allowedTypes(c.NodeTypes),
		regions:      toSet(c.SalesRegions),
		channels:     toSet(c.Channels),
		assetClasses: toSet(c.AssetClasses),
		mandates:     toSet(c.MandateStatuses),
		influences:   toSet(c.InfluenceLevels),
	}
}

// allows reports whether the node may be retained under the type and
// attribute filters.
func (e eligibility) allows(n *graph.Node) bool {
	if n.Type <= graph.NodeTypeUnknown || n.Type >= graph.NumNodeTypes {
		return false
	}
	if !e.types[n.Type] {
		return false
	}
	switch n.Type {
	case graph.NodeTypeCompany:
		if !lenientMatch(e.regions, n.Region()) {
			return false
		}
		if !lenientMatch(e.channels, n.Channel()) {
			return false
		}
	case graph.NodeTypeProduct, graph.NodeTypeIncumbentProduct:
		if !lenientMatch(e.assetClasses, n.AssetClass()) {
			return false
		}
	}
	return true
}

// allowsEdge reports whether the relationship may be traversed or emitted
// under the edge-attribute filters. Only Owns and Covers carry filterable
// attributes; every other type passes.
func (e eligibility) allowsEdge(rel *graph.Relationship) bool {
	switch rel.Type {
	case graph.RelTypeOwns:
		return lenientMatch(e.mandates, rel.MandateStatus())
	case graph.RelTypeCovers:
		return lenientMatch(e.influences, rel.LevelOfInfluence())
	}
	return true
}

// lenientMatch reports whether value passes the filter set: an empty filter
// or an absent property always passes.
func lenientMatch(set map[string]struct{}, value string) bool {
	if len(set) == 0 || value == "" {
		return true
	}
	_, ok := set[value]
	return ok
}

// toSet converts a canonical string list to a lookup set.
func toSet(in []string) map[string]struct{} {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(in))
	for _, v := range in {
		out[v] = struct{}{}
	}
	return out
}

// resolveAnchors locates the anchor nodes matched by each non-empty
// identity/advisor filter.
//
// Families are resolved independently and expanded independently; the
// retained node set is the union of the family closures (not an
// intersection). A non-empty filter matching zero anchors contributes an
// empty family, which expansion skips. Anchors whose type or attributes
// fail the eligibility gate are dropped before expansion.
func resolveAnchors(snap *graph.Snapshot, c Criteria, elig eligibility) []anchorFamily {
	var families []anchorFamily

	add := func(kind anchorKind, nodes []*graph.Node) {
		kept := make([]*graph.Node, 0, len(nodes))
		for _, n := range nodes {
			if elig.allows(n) {
				kept = append(kept, n)
			}
		}
		families = append(families, anchorFamily{kind: kind, nodes: kept})
	}

	if len(c.ConsultantIds) > 0 {
		add(anchorConsultant, nodesNamed(snap, graph.NodeTypeConsultant, c.ConsultantIds))
	}
	if len(c.FieldConsultantIds) > 0 {
		add(anchorFieldConsultant, nodesNamed(snap, graph.NodeTypeFieldConsultant, c.FieldConsultantIds))
	}
	if len(c.ClientIds) > 0 {
		add(anchorCompany, nodesNamed(snap, graph.NodeTypeCompany, c.ClientIds))
	}
	if len(c.ProductIds) > 0 {
		nodes := nodesNamed(snap, graph.NodeTypeProduct, c.ProductIds)
		nodes = append(nodes, nodesNamed(snap, graph.NodeTypeIncumbentProduct, c.ProductIds)...)
		add(anchorProduct, nodes)
	}
	if len(c.IncumbentProductIds) > 0 {
		add(anchorProduct, nodesNamed(snap, graph.NodeTypeIncumbentProduct, c.IncumbentProductIds))
	}
	if len(c.ClientAdvisorIds) > 0 {
		advisors := toSet(c.ClientAdvisorIds)
		var nodes []*graph.Node
		for _, n := range snap.NodesOfType(graph.NodeTypeCompany) {
			if _, ok := advisors[n.PCA()]; ok {
				nodes = append(nodes, n)
				continue
			}
			if _, ok := advisors[n.ACA()]; ok {
				nodes = append(nodes, n)
			}
		}
		add(anchorClientAdvisor, nodes)
	}
	if len(c.ConsultantAdvisorIds) > 0 {
		advisors := toSet(c.ConsultantAdvisorIds)
		var nodes []*graph.Node
		for _, n := range snap.NodesOfType(graph.NodeTypeConsultant) {
			if _, ok := advisors[n.PCA()]; ok {
				nodes = append(nodes, n)
				continue
			}
			if _, ok := advisors[n.ConsultantAdvisor()]; ok {
				nodes = append(nodes, n)
			}
		}
		add(anchorConsultantAdvisor, nodes)
	}

	return families
}

// nodesNamed collects nodes of the given type whose display name is in the
// list, via the snapshot's per-type name index.
func nodesNamed(snap *graph.Snapshot, t graph.NodeType, names []string) []*graph.Node {
	var out []*graph.Node
	for _, name := range names {
		out = append(out, snap.NodesByName(t, name)...)
	}
	return out
}
