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
	"fmt"
	"time"
)

// Snapshot is an immutable read view over the relationship network for one
// query scope.
//
// Thread Safety:
//
//	Snapshot is NOT safe for concurrent use during building. It is
//	designed for single-writer access during build, then read-only after
//	Freeze(). After Freeze() is called, the snapshot can be safely read
//	from multiple goroutines.
//
// Lifecycle:
//
//  1. Create with NewSnapshot()
//  2. Populate with AddNode() and AddRelationship() calls
//  3. Call Freeze() to finalize
//  4. Query with NodeByID(), NodesOfType(), RelationshipsFrom(), etc.
type Snapshot struct {
	// nodes maps node ID to Node. Unexported to prevent direct access.
	nodes map[string]*Node

	// nodeOrder preserves insertion order for deterministic iteration.
	nodeOrder []*Node

	// pending holds relationships as added; resolved against nodes at
	// Freeze() time so dangling references can be skipped and counted.
	pending []*Relationship

	// relIDs tracks relationship IDs for duplicate detection.
	relIDs map[string]struct{}

	// relationships contains all non-dangling relationships, fixed at
	// Freeze() time.
	relationships []*Relationship

	// nodesByType stores nodes grouped by entity type.
	// Array indexed by NodeType for cache-friendly access.
	// Thread safety: writes during Freeze() only, reads after.
	nodesByType [NumNodeTypes][]*Node

	// nodesByName maps display name to nodes, per entity type. Names are
	// unique within a type for identity-filter matching, but the index
	// tolerates provider duplicates by holding a slice.
	nodesByName [NumNodeTypes]map[string][]*Node

	// relsByType stores relationships grouped by their type.
	relsByType [NumRelTypes][]*Relationship

	// outgoing maps source node ID to relationships leaving it.
	outgoing map[string][]*Relationship

	// incoming maps target node ID to relationships entering it.
	incoming map[string][]*Relationship

	// dangling counts relationships skipped at Freeze() because an
	// endpoint was absent from the snapshot. Data-quality signal, not an
	// error (the offending relationship is dropped and traversal continues).
	dangling int

	// state is the current lifecycle state.
	state SnapshotState

	// builtAtMilli is the Unix timestamp in milliseconds when Freeze()
	// was called.
	builtAtMilli int64
}

// SnapshotStats summarizes a frozen snapshot for statistics output.
type SnapshotStats struct {
	// NodeCount is the total number of nodes.
	NodeCount int `json:"nodeCount"`

	// RelationshipCount is the number of non-dangling relationships.
	RelationshipCount int `json:"relationshipCount"`

	// NodesByType counts nodes per entity type (wire tag keyed).
	NodesByType map[string]int `json:"nodesByType"`

	// RelationshipsByType counts relationships per type (wire tag keyed).
	RelationshipsByType map[string]int `json:"relationshipsByType"`

	// DanglingRelationships is the number of relationships skipped at
	// Freeze() because an endpoint was missing.
	DanglingRelationships int `json:"danglingRelationships"`
}

// NewSnapshot creates a new empty snapshot in the building state.
func NewSnapshot() *Snapshot {
	s := &Snapshot{
		nodes:    make(map[string]*Node),
		relIDs:   make(map[string]struct{}),
		outgoing: make(map[string][]*Relationship),
		incoming: make(map[string][]*Relationship),
		state:    SnapshotStateBuilding,
	}
	for t := 0; t < int(NumNodeTypes); t++ {
		s.nodesByName[t] = make(map[string][]*Node)
	}
	return s
}

// State returns the current lifecycle state of the snapshot.
func (s *Snapshot) State() SnapshotState {
	return s.state
}

// IsFrozen returns true if the snapshot is in read-only mode.
func (s *Snapshot) IsFrozen() bool {
	return s.state == SnapshotStateReadOnly
}

// BuiltAtMilli returns the Unix millisecond timestamp of Freeze(), or 0 if
// the snapshot has not been frozen.
func (s *Snapshot) BuiltAtMilli() int64 {
	return s.builtAtMilli
}

// AddNode adds a node to the snapshot.
//
// Errors:
//
//	ErrSnapshotFrozen - snapshot has been frozen
//	ErrInvalidNode - node is nil or has an empty ID
//	ErrDuplicateNode - node with the same ID already exists
//
// Ownership: the snapshot stores the pointer but does NOT copy the node.
// The node MUST NOT be mutated after this call.
func (s *Snapshot) AddNode(node *Node) error {
	if s.state == SnapshotStateReadOnly {
		return ErrSnapshotFrozen
	}
	if node == nil || node.ID == "" {
		return fmt.Errorf("%w: missing node or node ID", ErrInvalidNode)
	}
	if _, exists := s.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
	}

	s.nodes[node.ID] = node
	s.nodeOrder = append(s.nodeOrder, node)
	return nil
}

// AddRelationship adds a relationship to the snapshot.
//
// Endpoint existence is NOT checked here: nodes may be added in any order,
// and dangling relationships are resolved (skipped and counted) at Freeze().
//
// Errors:
//
//	ErrSnapshotFrozen - snapshot has been frozen
//	ErrInvalidRelationship - relationship is nil or missing ID/endpoints
//	ErrDuplicateRelationship - relationship with the same ID already exists
func (s *Snapshot) AddRelationship(rel *Relationship) error {
	if s.state == SnapshotStateReadOnly {
		return ErrSnapshotFrozen
	}
	if rel == nil || rel.ID == "" || rel.SourceID == "" || rel.TargetID == "" {
		return fmt.Errorf("%w: missing relationship ID or endpoint", ErrInvalidRelationship)
	}
	if _, exists := s.relIDs[rel.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRelationship, rel.ID)
	}

	s.relIDs[rel.ID] = struct{}{}
	s.pending = append(s.pending, rel)
	return nil
}

// Freeze transitions the snapshot to read-only mode and finalizes all
// secondary indexes.
//
// Relationships whose source or target node is absent are excluded from
// every index and counted in Stats().DanglingRelationships. This operation
// is irreversible; after Freeze() the snapshot is safe for concurrent reads.
func (s *Snapshot) Freeze() {
	if s.state == SnapshotStateReadOnly {
		return
	}

	for _, node := range s.nodeOrder {
		t := node.Type
		if t <= NodeTypeUnknown || t >= NumNodeTypes {
			// Out-of-range types stay out of the typed indexes; the node
			// itself is caller-owned and is never written to.
			continue
		}
		s.nodesByType[t] = append(s.nodesByType[t], node)
		if name := node.Name(); name != "" {
			s.nodesByName[t][name] = append(s.nodesByName[t][name], node)
		}
	}

	for _, rel := range s.pending {
		if _, ok := s.nodes[rel.SourceID]; !ok {
			s.dangling++
			continue
		}
		if _, ok := s.nodes[rel.TargetID]; !ok {
			s.dangling++
			continue
		}
		s.relationships = append(s.relationships, rel)
		if rel.Type > RelTypeUnknown && rel.Type < NumRelTypes {
			s.relsByType[rel.Type] = append(s.relsByType[rel.Type], rel)
		}
		s.outgoing[rel.SourceID] = append(s.outgoing[rel.SourceID], rel)
		s.incoming[rel.TargetID] = append(s.incoming[rel.TargetID], rel)
	}
	s.pending = nil

	s.state = SnapshotStateReadOnly
	s.builtAtMilli = time.Now().UnixMilli()
}

// NodeCount returns the number of nodes in the snapshot.
func (s *Snapshot) NodeCount() int {
	return len(s.nodes)
}

// RelationshipCount returns the number of non-dangling relationships.
// Only meaningful after Freeze().
func (s *Snapshot) RelationshipCount() int {
	return len(s.relationships)
}

// DanglingRelationships returns the number of relationships skipped at
// Freeze() because an endpoint was missing.
func (s *Snapshot) DanglingRelationships() int {
	return s.dangling
}

// NodeByID retrieves a node by its ID, or nil if absent.
func (s *Snapshot) NodeByID(id string) *Node {
	return s.nodes[id]
}

// Nodes returns all nodes in insertion order.
//
// The returned slice is shared; callers MUST NOT modify it.
func (s *Snapshot) Nodes() []*Node {
	return s.nodeOrder
}

// NodesOfType returns all nodes of the given entity type.
//
// The returned slice is shared; callers MUST NOT modify it.
// Returns nil before Freeze().
func (s *Snapshot) NodesOfType(t NodeType) []*Node {
	if s.state != SnapshotStateReadOnly || t <= NodeTypeUnknown || t >= NumNodeTypes {
		return nil
	}
	return s.nodesByType[t]
}

// NodesByName returns the nodes of the given type carrying the given
// display name. Names are unique within a type in well-formed provider
// data, but duplicates are tolerated.
func (s *Snapshot) NodesByName(t NodeType, name string) []*Node {
	if s.state != SnapshotStateReadOnly || t <= NodeTypeUnknown || t >= NumNodeTypes {
		return nil
	}
	return s.nodesByName[t][name]
}

// Relationships returns all non-dangling relationships in insertion order.
//
// The returned slice is shared; callers MUST NOT modify it.
// Returns nil before Freeze().
func (s *Snapshot) Relationships() []*Relationship {
	if s.state != SnapshotStateReadOnly {
		return nil
	}
	return s.relationships
}

// RelationshipsOfType returns all relationships of the given type.
//
// The returned slice is shared; callers MUST NOT modify it.
// Returns nil before Freeze().
func (s *Snapshot) RelationshipsOfType(t RelType) []*Relationship {
	if s.state != SnapshotStateReadOnly || t <= RelTypeUnknown || t >= NumRelTypes {
		return nil
	}
	return s.relsByType[t]
}

// RelationshipsFrom returns the relationships whose source is the given
// node ID. O(1) amortized adjacency lookup.
func (s *Snapshot) RelationshipsFrom(id string) []*Relationship {
	if s.state != SnapshotStateReadOnly {
		return nil
	}
	return s.outgoing[id]
}

// RelationshipsTo returns the relationships whose target is the given
// node ID. O(1) amortized adjacency lookup.
func (s *Snapshot) RelationshipsTo(id string) []*Relationship {
	if s.state != SnapshotStateReadOnly {
		return nil
	}
	return s.incoming[id]
}

// Stats returns summary statistics for a frozen snapshot.
func (s *Snapshot) Stats() SnapshotStats {
	stats := SnapshotStats{
		NodeCount:             len(s.nodes),
		RelationshipCount:     len(s.relationships),
		NodesByType:           make(map[string]int),
		RelationshipsByType:   make(map[string]int),
		DanglingRelationships: s.dangling,
	}
	for t := NodeTypeUnknown + 1; t < NumNodeTypes; t++ {
		if n := len(s.nodesByType[t]); n > 0 {
			stats.NodesByType[t.String()] = n
		}
	}
	for t := RelTypeUnknown + 1; t < NumRelTypes; t++ {
		if n := len(s.relsByType[t]); n > 0 {
			stats.RelationshipsByType[t.String()] = n
		}
	}
	return stats
}
