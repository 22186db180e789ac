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

import "strings"

// SnapshotState represents the lifecycle state of the snapshot.
type SnapshotState int

const (
	// SnapshotStateBuilding indicates the snapshot is accepting
	// AddNode/AddRelationship calls.
	SnapshotStateBuilding SnapshotState = iota

	// SnapshotStateReadOnly indicates the snapshot is frozen and read-only.
	SnapshotStateReadOnly
)

// String returns the string representation of the SnapshotState.
func (s SnapshotState) String() string {
	switch s {
	case SnapshotStateBuilding:
		return "building"
	case SnapshotStateReadOnly:
		return "readonly"
	default:
		return "unknown"
	}
}

// NodeType defines the entity type of a node in the relationship network.
type NodeType int

const (
	// NodeTypeUnknown indicates an unrecognized entity type.
	NodeTypeUnknown NodeType = iota

	// NodeTypeConsultant is a consulting firm entity.
	NodeTypeConsultant

	// NodeTypeFieldConsultant is an individual field consultant employed
	// by a consulting firm.
	NodeTypeFieldConsultant

	// NodeTypeCompany is a client company covered by field consultants.
	NodeTypeCompany

	// NodeTypeProduct is an investment product owned by companies.
	NodeTypeProduct

	// NodeTypeIncumbentProduct is a product currently held by a company
	// that may recommend replacement products.
	NodeTypeIncumbentProduct

	// NumNodeTypes is the total number of node types (for array sizing).
	// Used for the nodesByType index.
	NumNodeTypes
)

// nodeTypeNames maps NodeType values to their wire representations.
var nodeTypeNames = map[NodeType]string{
	NodeTypeUnknown:          "UNKNOWN",
	NodeTypeConsultant:       "CONSULTANT",
	NodeTypeFieldConsultant:  "FIELD_CONSULTANT",
	NodeTypeCompany:          "COMPANY",
	NodeTypeProduct:          "PRODUCT",
	NodeTypeIncumbentProduct: "INCUMBENT_PRODUCT",
}

// String returns the wire representation of the NodeType.
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseNodeType parses a wire type tag into a NodeType.
//
// Matching is case-insensitive and tolerates both wire tags
// ("FIELD_CONSULTANT") and display names ("FieldConsultant").
// Returns NodeTypeUnknown and false for unrecognized tags.
func ParseNodeType(s string) (NodeType, bool) {
	switch normalizeTag(s) {
	case "CONSULTANT":
		return NodeTypeConsultant, true
	case "FIELD_CONSULTANT", "FIELDCONSULTANT":
		return NodeTypeFieldConsultant, true
	case "COMPANY":
		return NodeTypeCompany, true
	case "PRODUCT":
		return NodeTypeProduct, true
	case "INCUMBENT_PRODUCT", "INCUMBENTPRODUCT":
		return NodeTypeIncumbentProduct, true
	default:
		return NodeTypeUnknown, false
	}
}

// IsProduct returns true for the two product node types.
func (t NodeType) IsProduct() bool {
	return t == NodeTypeProduct || t == NodeTypeIncumbentProduct
}

// RelType defines the type of relationship between entities.
type RelType int

const (
	// RelTypeUnknown indicates an unrecognized relationship type.
	RelTypeUnknown RelType = iota

	// RelTypeEmploys links a Consultant to a FieldConsultant.
	RelTypeEmploys

	// RelTypeCovers links a FieldConsultant to a Company.
	RelTypeCovers

	// RelTypeOwns links a Company to a Product or IncumbentProduct.
	RelTypeOwns

	// RelTypeRates links a Consultant to a Product it has rated.
	RelTypeRates

	// RelTypeRecommends links an IncumbentProduct to a Product it
	// recommends as a replacement.
	RelTypeRecommends

	// NumRelTypes is the total number of relationship types (for array
	// sizing). Used for the relsByType index.
	NumRelTypes
)

// relTypeNames maps RelType values to their wire representations.
var relTypeNames = map[RelType]string{
	RelTypeUnknown:    "UNKNOWN",
	RelTypeEmploys:    "EMPLOYS",
	RelTypeCovers:     "COVERS",
	RelTypeOwns:       "OWNS",
	RelTypeRates:      "RATES",
	RelTypeRecommends: "RECOMMENDS",
}

// String returns the wire representation of the RelType.
func (t RelType) String() string {
	if name, ok := relTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseRelType parses a wire type tag into a RelType.
//
// Matching is case-insensitive. Returns RelTypeUnknown and false for
// unrecognized tags.
func ParseRelType(s string) (RelType, bool) {
	switch normalizeTag(s) {
	case "EMPLOYS":
		return RelTypeEmploys, true
	case "COVERS":
		return RelTypeCovers, true
	case "OWNS":
		return RelTypeOwns, true
	case "RATES":
		return RelTypeRates, true
	case "RECOMMENDS":
		return RelTypeRecommends, true
	default:
		return RelTypeUnknown, false
	}
}

// normalizeTag upper-cases a type tag and trims surrounding whitespace so
// wire tags and display names compare equal.
func normalizeTag(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Well-known property keys carried by provider snapshots.
const (
	// PropName is the display name of an entity. Names are unique within
	// a node type but not across types.
	PropName = "name"

	// PropRegion is the sales region of a company.
	PropRegion = "region"

	// PropChannel is the sales channel of a company.
	PropChannel = "channel"

	// PropAssetClass is the asset class of a product.
	PropAssetClass = "asset_class"

	// PropPCA is the primary client advisor of a company or consultant.
	PropPCA = "pca"

	// PropACA is the alternate client advisor of a company.
	PropACA = "aca"

	// PropConsultantAdvisor is the advisor assigned to a consultant.
	PropConsultantAdvisor = "consultant_advisor"

	// PropMandateStatus is the mandate status on a node or an Owns
	// relationship.
	PropMandateStatus = "mandate_status"

	// PropLevelOfInfluence is the influence level on a Covers relationship.
	PropLevelOfInfluence = "level_of_influence"

	// PropRankGroup is the rating group on a Rates relationship.
	PropRankGroup = "rankgroup"

	// PropRankValue is the numeric rating value on a Rates relationship.
	PropRankValue = "rankvalue"
)

// Node represents a business entity in the relationship network.
//
// The Properties map is NOT owned by the Node and MUST NOT be mutated
// after the node is added to a Snapshot.
type Node struct {
	// ID is the unique identifier within a snapshot.
	ID string

	// Type is the entity type.
	Type NodeType

	// Properties holds provider-supplied attributes (name, region, pca, ...).
	Properties map[string]string
}

// Name returns the display name, or "" if absent.
func (n *Node) Name() string { return n.Properties[PropName] }

// Region returns the sales region, or "" if absent.
func (n *Node) Region() string { return n.Properties[PropRegion] }

// Channel returns the sales channel, or "" if absent.
func (n *Node) Channel() string { return n.Properties[PropChannel] }

// AssetClass returns the asset class, or "" if absent.
func (n *Node) AssetClass() string { return n.Properties[PropAssetClass] }

// PCA returns the primary client advisor, or "" if absent.
func (n *Node) PCA() string { return n.Properties[PropPCA] }

// ACA returns the alternate client advisor, or "" if absent.
func (n *Node) ACA() string { return n.Properties[PropACA] }

// ConsultantAdvisor returns the consultant advisor, or "" if absent.
func (n *Node) ConsultantAdvisor() string { return n.Properties[PropConsultantAdvisor] }

// MandateStatus returns the mandate status, or "" if absent.
func (n *Node) MandateStatus() string { return n.Properties[PropMandateStatus] }

// Relationship represents a directed, typed link between two entities.
//
// The Properties map is NOT owned by the Relationship and MUST NOT be
// mutated after the relationship is added to a Snapshot.
type Relationship struct {
	// ID is the unique identifier within a snapshot.
	ID string

	// Type is the relationship type.
	Type RelType

	// SourceID is the ID of the source node.
	SourceID string

	// TargetID is the ID of the target node.
	TargetID string

	// Properties holds provider-supplied attributes (mandate_status,
	// level_of_influence, rankgroup, ...).
	Properties map[string]string
}

// MandateStatus returns the mandate status on an Owns relationship,
// or "" if absent.
func (r *Relationship) MandateStatus() string { return r.Properties[PropMandateStatus] }

// LevelOfInfluence returns the influence level on a Covers relationship,
// or "" if absent.
func (r *Relationship) LevelOfInfluence() string { return r.Properties[PropLevelOfInfluence] }

// RankGroup returns the rating group on a Rates relationship, or "" if absent.
func (r *Relationship) RankGroup() string { return r.Properties[PropRankGroup] }

// RankValue returns the rating value on a Rates relationship, or "" if absent.
func (r *Relationship) RankValue() string { return r.Properties[PropRankValue] }
