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
	"reflect"
	"strings"
	"testing"

	"github.com/AleutianAI/relgraph/services/network/graph"
)

func TestNormalizeCanonicalizes(t *testing.T) {
	c := Criteria{
		ConsultantIds: []string{" Alpha ", "Alpha", "", "Beta", "  "},
		SalesRegions:  nil,
	}
	norm := c.Normalize()

	if want := []string{"Alpha", "Beta"}; !reflect.DeepEqual(norm.ConsultantIds, want) {
		t.Errorf("ConsultantIds = %v, want %v", norm.ConsultantIds, want)
	}
	if norm.SalesRegions == nil {
		t.Error("nil list not replaced with empty slice")
	}
	// Normalize is value-semantics: the input is untouched.
	if len(c.ConsultantIds) != 5 {
		t.Error("Normalize mutated its receiver")
	}
}

func TestNormalizeDerivesMode(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want Mode
	}{
		{"empty", Criteria{}, ModeGeneral},
		{"attribute filters only", Criteria{SalesRegions: []string{"EMEA"}, NodeTypes: []string{"COMPANY"}}, ModeGeneral},
		{"consultant filter", Criteria{ConsultantIds: []string{"Alpha"}}, ModeFocused},
		{"field consultant filter", Criteria{FieldConsultantIds: []string{"Dana"}}, ModeFocused},
		{"client filter", Criteria{ClientIds: []string{"Acme"}}, ModeFocused},
		{"product filter", Criteria{ProductIds: []string{"Global Equity"}}, ModeFocused},
		{"incumbent product filter", Criteria{IncumbentProductIds: []string{"Legacy"}}, ModeFocused},
		{"client advisor filter", Criteria{ClientAdvisorIds: []string{"Jordan"}}, ModeFocused},
		{"consultant advisor filter", Criteria{ConsultantAdvisorIds: []string{"Riley"}}, ModeFocused},
		{"whitespace-only identity filter", Criteria{ConsultantIds: []string{" ", ""}}, ModeGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Normalize().Mode; got != tt.want {
				t.Errorf("Mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	longEntry := strings.Repeat("x", MaxEntryLength+1)
	tooMany := make([]string, MaxListEntries+1)
	for i := range tooMany {
		tooMany[i] = "v"
	}

	tests := []struct {
		name      string
		c         Criteria
		wantField string
	}{
		{"valid empty", Criteria{}, ""},
		{"valid populated", Criteria{
			NodeTypes:     []string{"COMPANY", "product"},
			ConsultantIds: []string{"Alpha Advisors"},
		}, ""},
		{"unknown entity names are not errors", Criteria{ClientIds: []string{"No Such Co"}}, ""},
		{"entry too long", Criteria{Channels: []string{longEntry}}, "Channels"},
		{"list too large", Criteria{Ratings: tooMany}, "Ratings"},
		{"unknown node type", Criteria{NodeTypes: []string{"WIDGET"}}, "nodeTypes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %T, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}
			if !errors.Is(err, ErrInvalidCriteria) {
				t.Error("ValidationError does not unwrap to ErrInvalidCriteria")
			}
		})
	}
}

func TestAllowedTypes(t *testing.T) {
	all := allowedTypes(nil)
	for nt := graph.NodeType(0); nt < graph.NumNodeTypes; nt++ {
		if !all[nt] {
			t.Errorf("empty filter excludes %v", nt)
		}
	}

	mask := allowedTypes([]string{"COMPANY", "product"})
	if !mask[graph.NodeTypeCompany] || !mask[graph.NodeTypeProduct] {
		t.Error("named types not allowed")
	}
	if mask[graph.NodeTypeConsultant] {
		t.Error("unnamed type allowed")
	}
}
