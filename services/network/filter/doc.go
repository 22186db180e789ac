// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package filter implements the subgraph filtering/extraction engine over a
// frozen relationship-network snapshot.
//
// Given a graph.Snapshot and a declarative Criteria set, the engine computes
// the minimal connected, explainable subgraph satisfying those criteria. The
// pipeline runs strictly left to right, once per request, and no stage holds
// state across calls:
//
//	normalize -> resolve anchors -> expand -> prune relationships
//	          -> prune orphans -> assemble
//
// # Filtering Modes
//
// Criteria derive a mode during normalization. Focused mode is active when
// any identity or advisor filter names specific entities; connectivity of
// the result is then guaranteed by construction, because every retained node
// is reached by expanding an anchor and edges failing the mandate/influence
// filters are never traversed. General mode is driven only by type and
// attribute filters and may require explicit orphan removal.
//
// # Purity and Concurrency
//
// Filter is a pure, synchronous transformation. It never mutates the input
// snapshot, performs no I/O, and keeps all working sets call-local, so
// concurrent Filter calls against the same frozen snapshot are safe without
// locking. Execution is bounded by snapshot size times a constant hop depth
// (the entity schema is acyclic, at most five hops) and always terminates.
//
// # Error Taxonomy
//
// Malformed criteria surface as *ValidationError before any traversal.
// Identity filters that match nothing are not errors: the result is valid
// and empty. Relationships referencing missing nodes never reach the engine;
// the snapshot drops and counts them at Freeze().
package filter
