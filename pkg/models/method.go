package models

import (
	"sort"
	"strings"
)

// Visibility is the declared accessibility of a method.
type Visibility string

const (
	VisibilityPublic            Visibility = "public"
	VisibilityPrivate           Visibility = "private"
	VisibilityProtected         Visibility = "protected"
	VisibilityInternal          Visibility = "internal"
	VisibilityProtectedInternal Visibility = "protected-internal"
)

// ParseVisibility converts a string to Visibility, defaulting to internal.
func ParseVisibility(s string) Visibility {
	switch strings.ToLower(s) {
	case "public":
		return VisibilityPublic
	case "private":
		return VisibilityPrivate
	case "protected":
		return VisibilityProtected
	case "protected-internal", "protectedinternal", "protected_internal":
		return VisibilityProtectedInternal
	default:
		return VisibilityInternal
	}
}

// SafetyTier classifies the removal risk of an unused method.
type SafetyTier string

const (
	// TierDoNotRemove marks methods that are load-bearing for the platform
	// or security model and must never appear in a report.
	TierDoNotRemove SafetyTier = "do-not-remove"
	TierLow         SafetyTier = "low"
	TierMedium      SafetyTier = "medium"
	TierHigh        SafetyTier = "high"
)

// SourceLocation is optional provenance for a method declaration.
type SourceLocation struct {
	File            string `json:"file"`
	DeclarationLine uint32 `json:"declaration_line"`
	BodyStartLine   uint32 `json:"body_start_line"`
	BodyEndLine     uint32 `json:"body_end_line"`
}

// MethodRecord is one declared method or constructor from a module's
// static inventory. Records are created once during extraction and never
// mutated afterward.
type MethodRecord struct {
	Module     string          `json:"module"`
	Type       string          `json:"type"` // fully qualified owning type
	Name       string          `json:"name"`
	Signature  string          `json:"signature"`
	Visibility Visibility      `json:"visibility"`
	Tier       SafetyTier      `json:"tier"`
	Location   *SourceLocation `json:"location,omitempty"`
}

// Key returns the canonical identity used to match the record against
// execution data. Overloads collapse to the same key; comparison against
// trace keys is case-insensitive.
func (m MethodRecord) Key() string {
	return m.Type + "." + m.Name
}

// MethodInventory is an ordered collection of method records. Insertion
// order is preserved for reproducible output; duplicates are permitted.
type MethodInventory struct {
	Methods []MethodRecord `json:"methods"`
}

// Add appends a record to the inventory.
func (inv *MethodInventory) Add(m MethodRecord) {
	inv.Methods = append(inv.Methods, m)
}

// Len returns the number of records.
func (inv *MethodInventory) Len() int {
	return len(inv.Methods)
}

// Merge appends all records from other, preserving order.
func (inv *MethodInventory) Merge(other *MethodInventory) {
	if other == nil {
		return
	}
	inv.Methods = append(inv.Methods, other.Methods...)
}

// ByModule groups records by owning module name.
func (inv *MethodInventory) ByModule() map[string][]MethodRecord {
	groups := make(map[string][]MethodRecord)
	for _, m := range inv.Methods {
		groups[m.Module] = append(groups[m.Module], m)
	}
	return groups
}

// Modules returns the sorted unique module names in the inventory.
func (inv *MethodInventory) Modules() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range inv.Methods {
		if _, ok := seen[m.Module]; !ok {
			seen[m.Module] = struct{}{}
			names = append(names, m.Module)
		}
	}
	sort.Strings(names)
	return names
}
