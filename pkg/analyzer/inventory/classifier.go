// Package inventory extracts the static method inventory from module
// metadata documents and classifies every method's removal risk.
package inventory

import (
	"errors"
	"strings"

	"github.com/endjin/deadcode/pkg/metadata"
	"github.com/endjin/deadcode/pkg/models"
)

// ErrNilMethod is returned when Classify receives a nil type or member.
var ErrNilMethod = errors.New("classify: nil type or member")

// rule is one ordered classification step. Several predicates overlap on
// purpose (a method can be both virtual and protected); the first match
// wins, so rule order is part of the contract.
type rule struct {
	name    string
	matches func(t *metadata.TypeDef, m *metadata.Member) bool
	tier    models.SafetyTier
}

// Classifier assigns a safety tier to each method from its static
// metadata alone. Classification is pure: no I/O, no state.
type Classifier struct {
	rules []rule
}

// NewClassifier creates a classifier with the standard rule chain.
func NewClassifier() *Classifier {
	return &Classifier{rules: []rule{
		{
			// Property and event accessors. Special-named but not
			// accessor-shaped members (operators) fall through.
			name: "accessor",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool {
				return m.Modifiers.SpecialName && !m.IsOperator()
			},
			tier: models.TierMedium,
		},
		{
			name:    "must-keep marker",
			matches: hasMustKeepMarker,
			tier:    models.TierDoNotRemove,
		},
		{
			name: "security critical",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool {
				return m.HasAttribute("SecurityCritical")
			},
			tier: models.TierDoNotRemove,
		},
		{
			name: "event handler shape",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool {
				return isEventHandlerShape(m.Signature)
			},
			tier: models.TierMedium,
		},
		{
			name: "virtual or abstract",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool {
				return m.Modifiers.Virtual || m.Modifiers.Abstract
			},
			tier: models.TierMedium,
		},
		{
			name: "protected",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool {
				v := models.ParseVisibility(m.Visibility)
				return v == models.VisibilityProtected || v == models.VisibilityProtectedInternal
			},
			tier: models.TierMedium,
		},
		{
			name: "public surface",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool {
				return models.ParseVisibility(m.Visibility) == models.VisibilityPublic
			},
			tier: models.TierLow,
		},
		{
			name:    "test framework marker",
			matches: hasTestMarker,
			tier:    models.TierLow,
		},
		{
			name: "private",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool {
				return models.ParseVisibility(m.Visibility) == models.VisibilityPrivate
			},
			tier: models.TierHigh,
		},
		{
			// Internal and anything else unmatched.
			name:    "fallback",
			matches: func(t *metadata.TypeDef, m *metadata.Member) bool { return true },
			tier:    models.TierMedium,
		},
	}}
}

// Classify returns the safety tier for a member of a type. It fails only
// on nil input; every well-formed member receives exactly one tier.
func (c *Classifier) Classify(t *metadata.TypeDef, m *metadata.Member) (models.SafetyTier, error) {
	if t == nil || m == nil {
		return "", ErrNilMethod
	}
	for _, r := range c.rules {
		if r.matches(t, m) {
			return r.tier, nil
		}
	}
	// Unreachable: the fallback rule always matches.
	return models.TierMedium, nil
}

// mustKeepMemberAttrs mark members invoked by the platform itself.
var mustKeepMemberAttrs = []string{
	"DllImport",
	"UnmanagedCallersOnly",
	"ComVisible",
}

// mustKeepTypeAttrs mark types whose members the platform reaches via
// serialization or interop.
var mustKeepTypeAttrs = []string{
	"Serializable",
	"DataContract",
	"ComVisible",
}

func hasMustKeepMarker(t *metadata.TypeDef, m *metadata.Member) bool {
	for _, a := range mustKeepMemberAttrs {
		if m.HasAttribute(a) {
			return true
		}
	}
	for _, a := range mustKeepTypeAttrs {
		if t.HasAttribute(a) {
			return true
		}
	}
	return false
}

var testMarkers = []string{"Test", "Fact", "Theory"}

func hasTestMarker(t *metadata.TypeDef, m *metadata.Member) bool {
	for _, attr := range m.Attributes {
		for _, marker := range testMarkers {
			if strings.Contains(attr, marker) {
				return true
			}
		}
	}
	return false
}

// isEventHandlerShape matches the two-argument (sender, args) pattern.
func isEventHandlerShape(signature string) bool {
	sig := strings.TrimSpace(signature)
	sig = strings.TrimPrefix(sig, "(")
	sig = strings.TrimSuffix(sig, ")")

	params := strings.Split(sig, ",")
	if len(params) != 2 {
		return false
	}

	first := strings.TrimSpace(params[0])
	second := strings.TrimSpace(params[1])

	// Parameter entries may carry names ("object sender"); the type is
	// the first token.
	firstType := strings.Fields(first)
	secondType := strings.Fields(second)
	if len(firstType) == 0 || len(secondType) == 0 {
		return false
	}

	sender := firstType[0]
	args := secondType[0]

	if sender != "object" && sender != "System.Object" {
		return false
	}
	return strings.HasSuffix(args, "EventArgs")
}
