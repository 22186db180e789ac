// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph provides the typed relationship-network snapshot model.
//
// The graph package contains types for representing one query scope of the
// client relationship network as a directed graph: nodes are business
// entities (consultants, field consultants, companies, products, incumbent
// products) and relationships are the typed links between them (employs,
// covers, owns, rates, recommends).
//
// # Ownership Model
//
// The snapshot stores pointers to nodes and relationships but does NOT own
// the property maps inside them:
//   - Nodes and relationships MUST NOT be mutated after being added
//   - The snapshot does NOT copy properties (for memory efficiency)
//
// # Thread Safety
//
// Snapshot is NOT safe for concurrent use during building. It is designed for:
//   - Single-writer access during the build phase (AddNode, AddRelationship)
//   - Read-only access after Freeze() is called
//
// After Freeze(), the snapshot can be safely read from multiple goroutines.
//
// # Lifecycle
//
// A typical snapshot lifecycle:
//  1. Create with NewSnapshot()
//  2. Populate with AddNode() and AddRelationship() calls
//  3. Call Freeze() to finalize secondary indexes
//  4. Query with NodeByID(), NodesOfType(), RelationshipsFrom(), etc.
package graph

import "errors"

// Sentinel errors for snapshot operations.
var (
	// ErrSnapshotFrozen is returned when attempting to modify a frozen
	// snapshot. Once Freeze() is called, the snapshot becomes read-only.
	ErrSnapshotFrozen = errors.New("snapshot is frozen and cannot be modified")

	// ErrSnapshotNotFrozen is returned when querying a snapshot that has
	// not been frozen yet. Secondary indexes are only valid after Freeze().
	ErrSnapshotNotFrozen = errors.New("snapshot is not frozen")

	// ErrDuplicateNode is returned when adding a node with an ID that
	// already exists in the snapshot.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrDuplicateRelationship is returned when adding a relationship with
	// an ID that already exists in the snapshot.
	ErrDuplicateRelationship = errors.New("duplicate relationship ID")

	// ErrInvalidNode is returned when attempting to add a nil node or a
	// node with an empty ID.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidRelationship is returned when attempting to add a nil
	// relationship or one with an empty ID or endpoint.
	ErrInvalidRelationship = errors.New("invalid relationship")
)
