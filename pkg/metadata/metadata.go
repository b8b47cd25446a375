// Package metadata loads module metadata documents: the exported
// type/member tables of a compiled module, persisted as JSON.
package metadata

import "strings"

// MemberKind distinguishes methods from the two constructor forms.
type MemberKind string

const (
	KindMethod            MemberKind = "method"
	KindConstructor       MemberKind = "constructor"
	KindStaticConstructor MemberKind = "staticConstructor"
)

// Modifiers are the static modifier flags of a member.
type Modifiers struct {
	Virtual           bool `json:"virtual,omitempty"`
	Abstract          bool `json:"abstract,omitempty"`
	Static            bool `json:"static,omitempty"`
	SpecialName       bool `json:"specialName,omitempty"`
	CompilerGenerated bool `json:"compilerGenerated,omitempty"`
}

// Member is one declared method or constructor of a type.
type Member struct {
	Name       string     `json:"name"`
	Kind       MemberKind `json:"kind"`
	Visibility string     `json:"visibility"`
	Signature  string     `json:"signature,omitempty"`
	Attributes []string   `json:"attributes,omitempty"`
	Modifiers  Modifiers  `json:"modifiers,omitempty"`
}

// IsOperator reports whether the member is an operator overload. Operators
// carry the special-name flag but are not property or event accessors.
func (m Member) IsOperator() bool {
	return strings.HasPrefix(m.Name, "op_")
}

// HasAttribute reports whether the member carries the named attribute,
// with or without the Attribute suffix.
func (m Member) HasAttribute(name string) bool {
	return hasAttribute(m.Attributes, name)
}

// TypeDef is one declared type and the members it declares itself.
// Inherited members are not listed; each type owns only what it declares.
type TypeDef struct {
	Name       string   `json:"name"` // fully qualified
	Kind       string   `json:"kind"` // class, struct, interface, enum, delegate
	Attributes []string `json:"attributes,omitempty"`
	Members    []Member `json:"members,omitempty"`
}

// HasAttribute reports whether the type carries the named attribute.
func (t TypeDef) HasAttribute(name string) bool {
	return hasAttribute(t.Attributes, name)
}

// Document is the metadata export of a single compiled module.
type Document struct {
	Module string    `json:"module"`
	Types  []TypeDef `json:"types"`
}

func hasAttribute(attrs []string, name string) bool {
	short := strings.TrimSuffix(name, "Attribute")
	for _, a := range attrs {
		// Attributes may be recorded fully qualified.
		if idx := strings.LastIndex(a, "."); idx >= 0 {
			a = a[idx+1:]
		}
		if strings.TrimSuffix(a, "Attribute") == short {
			return true
		}
	}
	return false
}
