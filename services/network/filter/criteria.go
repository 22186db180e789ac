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
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/relgraph/services/network/graph"
)

// Criteria size limits, enforced by Validate.
const (
	// MaxListEntries is the maximum number of values per filter list.
	MaxListEntries = 10000

	// MaxEntryLength is the maximum length of a single filter value.
	MaxEntryLength = 512
)

// Mode is the derived filtering mode.
type Mode int

const (
	// ModeGeneral is filtering driven only by type/attribute filters.
	// Orphan removal may be required to honor the connectivity guarantee.
	ModeGeneral Mode = iota

	// ModeFocused is filtering driven by explicit identity/advisor
	// filters. Connectivity is guaranteed by construction.
	ModeFocused
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeFocused:
		return "focused"
	default:
		return "general"
	}
}

// Criteria is the declarative filter set for one request.
//
// Field names follow the provider contract. Identity filters carry display
// names, not surrogate IDs. Arrays may be nil or empty; call Normalize()
// before handing criteria to pipeline stages.
type Criteria struct {
	// NodeTypes restricts which entity types may become anchors or
	// survive expansion. Applied before anchor resolution. Empty = all.
	NodeTypes []string `json:"nodeTypes" yaml:"nodeTypes" validate:"max=10000,dive,max=512"`

	// SalesRegions restricts companies to the given sales regions.
	SalesRegions []string `json:"sales_regions" yaml:"sales_regions" validate:"max=10000,dive,max=512"`

	// Channels restricts companies to the given sales channels.
	Channels []string `json:"channels" yaml:"channels" validate:"max=10000,dive,max=512"`

	// AssetClasses restricts products to the given asset classes.
	AssetClasses []string `json:"assetClasses" yaml:"assetClasses" validate:"max=10000,dive,max=512"`

	// Ratings restricts embedded ratings to the given rank groups.
	Ratings []string `json:"ratings" yaml:"ratings" validate:"max=10000,dive,max=512"`

	// InfluenceLevels constrains Covers relationships.
	InfluenceLevels []string `json:"influenceLevels" yaml:"influenceLevels" validate:"max=10000,dive,max=512"`

	// MandateStatuses constrains Owns relationships.
	MandateStatuses []string `json:"mandateStatuses" yaml:"mandateStatuses" validate:"max=10000,dive,max=512"`

	// ConsultantIds selects Consultant anchors by display name.
	ConsultantIds []string `json:"consultantIds" yaml:"consultantIds" validate:"max=10000,dive,max=512"`

	// FieldConsultantIds selects FieldConsultant anchors by display name.
	FieldConsultantIds []string `json:"fieldConsultantIds" yaml:"fieldConsultantIds" validate:"max=10000,dive,max=512"`

	// ClientIds selects Company anchors by display name.
	ClientIds []string `json:"clientIds" yaml:"clientIds" validate:"max=10000,dive,max=512"`

	// ProductIds selects Product or IncumbentProduct anchors by display name.
	ProductIds []string `json:"productIds" yaml:"productIds" validate:"max=10000,dive,max=512"`

	// IncumbentProductIds selects IncumbentProduct anchors by display name.
	IncumbentProductIds []string `json:"incumbentProductIds" yaml:"incumbentProductIds" validate:"max=10000,dive,max=512"`

	// ClientAdvisorIds selects Company anchors whose pca or aca matches.
	ClientAdvisorIds []string `json:"clientAdvisorIds" yaml:"clientAdvisorIds" validate:"max=10000,dive,max=512"`

	// ConsultantAdvisorIds selects Consultant anchors whose pca or
	// consultant_advisor matches.
	ConsultantAdvisorIds []string `json:"consultantAdvisorIds" yaml:"consultantAdvisorIds" validate:"max=10000,dive,max=512"`

	// ShowInactive keeps orphan nodes in general mode when true.
	ShowInactive bool `json:"showInactive" yaml:"showInactive"`

	// Mode is derived by Normalize(); it is ignored on input.
	Mode Mode `json:"-" yaml:"-" validate:"-"`
}

// validate is the shared validator instance for criteria shape checks.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize returns a fully-populated copy of the criteria: nil arrays
// become empty, entries are whitespace-trimmed, empty strings are dropped,
// duplicates are removed (first occurrence order preserved), and the Mode
// flag is derived.
//
// Mode is focused if any identity or advisor filter is non-empty after
// canonicalization; otherwise general. A list holding only empty strings
// therefore does not flip the mode.
func (c Criteria) Normalize() Criteria {
	out := c
	out.NodeTypes = canonicalize(c.NodeTypes)
	out.SalesRegions = canonicalize(c.SalesRegions)
	out.Channels = canonicalize(c.Channels)
	out.AssetClasses = canonicalize(c.AssetClasses)
	out.Ratings = canonicalize(c.Ratings)
	out.InfluenceLevels = canonicalize(c.InfluenceLevels)
	out.MandateStatuses = canonicalize(c.MandateStatuses)
	out.ConsultantIds = canonicalize(c.ConsultantIds)
	out.FieldConsultantIds = canonicalize(c.FieldConsultantIds)
	out.ClientIds = canonicalize(c.ClientIds)
	out.ProductIds = canonicalize(c.ProductIds)
	out.IncumbentProductIds = canonicalize(c.IncumbentProductIds)
	out.ClientAdvisorIds = canonicalize(c.ClientAdvisorIds)
	out.ConsultantAdvisorIds = canonicalize(c.ConsultantAdvisorIds)

	out.Mode = ModeGeneral
	if len(out.ConsultantIds) > 0 ||
		len(out.FieldConsultantIds) > 0 ||
		len(out.ClientIds) > 0 ||
		len(out.ProductIds) > 0 ||
		len(out.IncumbentProductIds) > 0 ||
		len(out.ClientAdvisorIds) > 0 ||
		len(out.ConsultantAdvisorIds) > 0 {
		out.Mode = ModeFocused
	}
	return out
}

// Validate checks the criteria shape. It returns a *ValidationError for the
// first malformed field found, or nil if the criteria are well-formed.
//
// Validation covers structure only (list sizes, entry lengths, parseable
// node type tags). Identity filters naming unknown entities are NOT errors;
// they simply match no anchors.
func (c Criteria) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{
				Field:  fe.Field(),
				Reason: fmt.Sprintf("failed %q constraint", fe.Tag()),
			}
		}
		return &ValidationError{Field: "criteria", Reason: err.Error()}
	}

	for _, raw := range c.NodeTypes {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if _, ok := graph.ParseNodeType(raw); !ok {
			return &ValidationError{
				Field:  "nodeTypes",
				Value:  raw,
				Reason: "unknown node type",
			}
		}
	}
	return nil
}

// canonicalize trims entries, drops empty strings, and removes duplicates
// while preserving first-occurrence order. Always returns a non-nil slice.
func canonicalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// allowedTypes converts the normalized nodeTypes filter into a per-type
// allow mask. An empty filter allows every type.
func allowedTypes(nodeTypes []string) [graph.NumNodeTypes]bool {
	var mask [graph.NumNodeTypes]bool
	if len(nodeTypes) == 0 {
		for t := range mask {
			mask[t] = true
		}
		return mask
	}
	for _, raw := range nodeTypes {
		if t, ok := graph.ParseNodeType(raw); ok {
			mask[t] = true
		}
	}
	return mask
}
