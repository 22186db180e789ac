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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/AleutianAI/relgraph/services/network/telemetry"
)

// wireSnapshot is the provider payload shape.
type wireSnapshot struct {
	Nodes         []wireNode         `json:"nodes"`
	Relationships []wireRelationship `json:"relationships"`
}

// wireNode is a single node as emitted by the graph-data provider.
type wireNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// wireRelationship is a single relationship as emitted by the provider.
type wireRelationship struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	SourceID   string         `json:"sourceId"`
	TargetID   string         `json:"targetId"`
	Properties map[string]any `json:"properties"`
}

// LoadSnapshot decodes a provider snapshot payload from r and returns it
// frozen and ready to query.
//
// The payload shape is:
//
//	{
//	  "nodes": [{"id": "...", "type": "COMPANY", "properties": {...}}],
//	  "relationships": [{"id": "...", "type": "OWNS",
//	                     "sourceId": "...", "targetId": "...",
//	                     "properties": {...}}]
//	}
//
// Property values may be strings, numbers, booleans, or null. Numbers and
// booleans are stringified; nulls are dropped. Unrecognized node or
// relationship type tags are decode errors naming the offending ID.
// Relationships referencing missing nodes are tolerated: they are skipped
// at Freeze() and counted in Stats().DanglingRelationships.
func LoadSnapshot(ctx context.Context, r io.Reader) (snap *Snapshot, err error) {
	start := time.Now()

	ctx, span := startLoadSpan(ctx)
	defer span.End()
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
			return
		}
		telemetry.SetSpanOK(span)
	}()

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var wire wireSnapshot
	if err := dec.Decode(&wire); err != nil {
		recordLoad(ctx, time.Since(start), 0, 0, 0, false)
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	snap = NewSnapshot()

	for _, wn := range wire.Nodes {
		t, ok := ParseNodeType(wn.Type)
		if !ok {
			recordLoad(ctx, time.Since(start), 0, 0, 0, false)
			return nil, fmt.Errorf("node %q: unknown node type %q", wn.ID, wn.Type)
		}
		props, err := stringifyProperties(wn.Properties)
		if err != nil {
			recordLoad(ctx, time.Since(start), 0, 0, 0, false)
			return nil, fmt.Errorf("node %q: %w", wn.ID, err)
		}
		if err := snap.AddNode(&Node{ID: wn.ID, Type: t, Properties: props}); err != nil {
			recordLoad(ctx, time.Since(start), 0, 0, 0, false)
			return nil, err
		}
	}

	for _, wr := range wire.Relationships {
		t, ok := ParseRelType(wr.Type)
		if !ok {
			recordLoad(ctx, time.Since(start), 0, 0, 0, false)
			return nil, fmt.Errorf("relationship %q: unknown relationship type %q", wr.ID, wr.Type)
		}
		props, err := stringifyProperties(wr.Properties)
		if err != nil {
			recordLoad(ctx, time.Since(start), 0, 0, 0, false)
			return nil, fmt.Errorf("relationship %q: %w", wr.ID, err)
		}
		rel := &Relationship{
			ID:         wr.ID,
			Type:       t,
			SourceID:   wr.SourceID,
			TargetID:   wr.TargetID,
			Properties: props,
		}
		if err := snap.AddRelationship(rel); err != nil {
			recordLoad(ctx, time.Since(start), 0, 0, 0, false)
			return nil, err
		}
	}

	snap.Freeze()

	recordLoad(ctx, time.Since(start),
		snap.NodeCount(), snap.RelationshipCount(), snap.DanglingRelationships(), true)
	return snap, nil
}

// ParseSnapshot decodes a provider snapshot payload from bytes.
// See LoadSnapshot for the payload contract.
func ParseSnapshot(ctx context.Context, data []byte) (*Snapshot, error) {
	return LoadSnapshot(ctx, bytes.NewReader(data))
}

// stringifyProperties converts a decoded JSON property map to the string
// form stored on nodes and relationships. Numbers and booleans are
// formatted; nulls are dropped; nested arrays/objects are rejected.
func stringifyProperties(in map[string]any) (map[string]string, error) {
	if len(in) == 0 {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			// Absent value; skip.
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			if val {
				out[k] = "true"
			} else {
				out[k] = "false"
			}
		default:
			return nil, fmt.Errorf("property %q: unsupported value type %T", k, v)
		}
	}
	return out, nil
}
