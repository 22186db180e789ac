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
	"sort"
	"time"

	"github.com/AleutianAI/relgraph/services/network/graph"
)

// Rating is one consultant's rating of a product, embedded on the product
// node's output representation.
type Rating struct {
	// Consultant is the display name of the rating consultant.
	Consultant string `json:"consultant"`

	// RankGroup is the rating group (e.g. "Positive", "Negative").
	RankGroup string `json:"rankgroup"`
}

// NodeData is the presentation payload of a result node.
type NodeData struct {
	// Name is the normalized display name.
	Name string `json:"name"`

	// Label duplicates Name for layout/UI consumers that expect a label.
	Label string `json:"label"`

	// Properties carries the original node properties.
	Properties map[string]string `json:"properties,omitempty"`

	// Ratings is present on product-type nodes only: the ratings from
	// retained consultants, sorted by consultant name.
	Ratings []Rating `json:"ratings,omitempty"`
}

// ResultNode is one retained node in the result.
type ResultNode struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	Data NodeData `json:"data"`
}

// RelationshipData is the presentation payload of a result relationship.
type RelationshipData struct {
	// RelType is the wire tag of the relationship type.
	RelType string `json:"relType"`

	// Properties carries the original relationship properties.
	Properties map[string]string `json:"properties,omitempty"`
}

// ResultRelationship is one retained relationship in the result. Rates
// relationships are never emitted; their content surfaces as Ratings on
// product nodes instead.
type ResultRelationship struct {
	ID     string           `json:"id"`
	Source string           `json:"source"`
	Target string           `json:"target"`
	Type   string           `json:"type"`
	Data   RelationshipData `json:"data"`
}

// Statistics summarizes a filter run against its input snapshot.
type Statistics struct {
	// Mode is the derived filtering mode ("focused" or "general").
	Mode string `json:"mode"`

	// InputNodes and InputRelationships are the snapshot totals.
	InputNodes         int `json:"inputNodes"`
	InputRelationships int `json:"inputRelationships"`

	// RetainedNodes and RetainedRelationships are the result totals.
	// RetainedRelationships counts emitted edges only (Rates excluded).
	RetainedNodes         int `json:"retainedNodes"`
	RetainedRelationships int `json:"retainedRelationships"`

	// NodesByType counts retained nodes per entity type (wire tag keyed).
	NodesByType map[string]int `json:"nodesByType"`

	// RelationshipsByType counts emitted relationships per type.
	RelationshipsByType map[string]int `json:"relationshipsByType"`

	// RatingsEmbedded is the total number of ratings embedded on
	// product nodes.
	RatingsEmbedded int `json:"ratingsEmbedded"`

	// NodeReduction and RelationshipReduction are the fraction of the
	// input removed by filtering, in [0, 1]. Zero when the input is empty.
	NodeReduction         float64 `json:"nodeReduction"`
	RelationshipReduction float64 `json:"relationshipReduction"`

	// DanglingSkipped is the number of snapshot relationships that were
	// dropped at load time because an endpoint was missing.
	DanglingSkipped int `json:"danglingSkipped"`

	// DurationMicro is the filter execution time in microseconds.
	DurationMicro int64 `json:"durationMicro"`
}

// Result is the engine output: an independent structure with no aliasing of
// input node or relationship objects assumed by downstream consumers.
type Result struct {
	Nodes         []ResultNode         `json:"nodes"`
	Relationships []ResultRelationship `json:"relationships"`
	Statistics    Statistics           `json:"statistics"`
}

// assemble builds the final Result from the surviving node and relationship
// sets: ratings from retained consultants are embedded into product nodes,
// Rates relationships are excluded from the edge list, and summary
// statistics are computed against the input snapshot.
//
// Output ordering is deterministic: nodes sort by (type, name, id) and
// relationships by (type, source, target, id).
func assemble(snap *graph.Snapshot, retained retainedSet, pruned prunedRelationships,
	c Criteria, elapsed time.Duration) *Result {

	ratingFilter := toSet(c.Ratings)

	// Ratings per product: Rates edges from retained Consultant nodes,
	// targeting the product, passing the ratings filter.
	ratingsByProduct := make(map[string][]Rating)
	ratingsEmbedded := 0
	for _, rel := range pruned.rates {
		source, ok := retained[rel.SourceID]
		if !ok || source.Type != graph.NodeTypeConsultant {
			continue
		}
		target, ok := retained[rel.TargetID]
		if !ok || !target.Type.IsProduct() {
			continue
		}
		if !lenientMatch(ratingFilter, rel.RankGroup()) {
			continue
		}
		ratingsByProduct[target.ID] = append(ratingsByProduct[target.ID], Rating{
			Consultant: source.Name(),
			RankGroup:  rel.RankGroup(),
		})
		ratingsEmbedded++
	}
	for _, ratings := range ratingsByProduct {
		sort.Slice(ratings, func(i, j int) bool {
			if ratings[i].Consultant != ratings[j].Consultant {
				return ratings[i].Consultant < ratings[j].Consultant
			}
			return ratings[i].RankGroup < ratings[j].RankGroup
		})
	}

	nodes := make([]ResultNode, 0, len(retained))
	nodesByType := make(map[string]int)
	for _, n := range retained {
		data := NodeData{
			Name:       n.Name(),
			Label:      n.Name(),
			Properties: copyProperties(n.Properties),
		}
		if n.Type.IsProduct() {
			data.Ratings = ratingsByProduct[n.ID]
		}
		nodes = append(nodes, ResultNode{
			ID:   n.ID,
			Type: n.Type.String(),
			Data: data,
		})
		nodesByType[n.Type.String()]++
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Type != nodes[j].Type {
			return nodes[i].Type < nodes[j].Type
		}
		if nodes[i].Data.Name != nodes[j].Data.Name {
			return nodes[i].Data.Name < nodes[j].Data.Name
		}
		return nodes[i].ID < nodes[j].ID
	})

	rels := make([]ResultRelationship, 0, len(pruned.edges))
	relsByType := make(map[string]int)
	for _, rel := range pruned.edges {
		rels = append(rels, ResultRelationship{
			ID:     rel.ID,
			Source: rel.SourceID,
			Target: rel.TargetID,
			Type:   rel.Type.String(),
			Data: RelationshipData{
				RelType:    rel.Type.String(),
				Properties: copyProperties(rel.Properties),
			},
		})
		relsByType[rel.Type.String()]++
	}
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].Type != rels[j].Type {
			return rels[i].Type < rels[j].Type
		}
		if rels[i].Source != rels[j].Source {
			return rels[i].Source < rels[j].Source
		}
		if rels[i].Target != rels[j].Target {
			return rels[i].Target < rels[j].Target
		}
		return rels[i].ID < rels[j].ID
	})

	stats := Statistics{
		Mode:                  c.Mode.String(),
		InputNodes:            snap.NodeCount(),
		InputRelationships:    snap.RelationshipCount(),
		RetainedNodes:         len(nodes),
		RetainedRelationships: len(rels),
		NodesByType:           nodesByType,
		RelationshipsByType:   relsByType,
		RatingsEmbedded:       ratingsEmbedded,
		DanglingSkipped:       snap.DanglingRelationships(),
		DurationMicro:         elapsed.Microseconds(),
	}
	if stats.InputNodes > 0 {
		stats.NodeReduction = 1 - float64(stats.RetainedNodes)/float64(stats.InputNodes)
	}
	if stats.InputRelationships > 0 {
		stats.RelationshipReduction = 1 - float64(stats.RetainedRelationships)/float64(stats.InputRelationships)
	}

	return &Result{
		Nodes:         nodes,
		Relationships: rels,
		Statistics:    stats,
	}
}

// copyProperties clones a property map so the result never aliases
// snapshot-owned data.
func copyProperties(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
