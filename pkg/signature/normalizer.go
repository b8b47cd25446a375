// Package signature normalizes raw method identifiers into the canonical
// Type.Method key space shared by static extraction and trace capture.
package signature

import (
	"regexp"
	"strings"
)

var (
	// Async state machines surface as a nested type <Method>d__N whose
	// MoveNext body is what actually runs.
	stateMachineRe = regexp.MustCompile(`[+.]<([^<>]+)>d__\d+`)

	// Lambda and closure containers (<>c, <>c__DisplayClass3_0). Their
	// numbering is not stable across builds, so they collapse to one token.
	closureRe = regexp.MustCompile(`<>c(__DisplayClass[\d_]+)?`)

	// The MoveNext frame only appears behind a state-machine wrapper; it
	// may still carry a parameter list at this point.
	moveNextRe = regexp.MustCompile(`\.MoveNext\b`)

	// Generic arity markers: backtick plus digits, optionally followed by
	// a bracketed type-argument list.
	genericArityRe = regexp.MustCompile("`\\d+(\\[[^\\]]*\\])?")
)

// ClosurePlaceholder replaces compiler-generated closure container names.
const ClosurePlaceholder = "Closure"

// DefaultAliases maps fully qualified primitive type names to their short
// spellings. Trace capture and static extraction describe the same
// parameter types with different verbosity; this evens them out.
func DefaultAliases() map[string]string {
	return map[string]string{
		"System.String":  "string",
		"System.Int32":   "int",
		"System.Int64":   "long",
		"System.Int16":   "short",
		"System.UInt32":  "uint",
		"System.UInt64":  "ulong",
		"System.UInt16":  "ushort",
		"System.Boolean": "bool",
		"System.Object":  "object",
		"System.Void":    "void",
		"System.Double":  "double",
		"System.Single":  "float",
		"System.Decimal": "decimal",
		"System.Char":    "char",
		"System.Byte":    "byte",
		"System.SByte":   "sbyte",
	}
}

// Normalizer rewrites raw method identifiers into canonical keys. The
// alias table is captured at construction and never mutated.
type Normalizer struct {
	replacer *strings.Replacer
}

// Option configures a Normalizer.
type Option func(*options)

type options struct {
	aliases map[string]string
}

// WithAliases merges additional type aliases over the defaults.
func WithAliases(aliases map[string]string) Option {
	return func(o *options) {
		for k, v := range aliases {
			o.aliases[k] = v
		}
	}
}

// NewNormalizer creates a Normalizer with the default alias table plus
// any overrides.
func NewNormalizer(opts ...Option) *Normalizer {
	o := &options{aliases: DefaultAliases()}
	for _, opt := range opts {
		opt(o)
	}

	pairs := make([]string, 0, len(o.aliases)*2)
	for from, to := range o.aliases {
		pairs = append(pairs, from, to)
	}
	return &Normalizer{replacer: strings.NewReplacer(pairs...)}
}

// Normalize rewrites a raw identifier into its canonical key. It is a
// total function: it never fails, and empty input yields empty output.
// Normalize is idempotent.
func (n *Normalizer) Normalize(raw string) string {
	s := raw

	// 1. Drop an optional Module! qualifier.
	if idx := strings.Index(s, "!"); idx >= 0 {
		s = s[idx+1:]
	}

	// 2. Primitive type aliases.
	s = n.replacer.Replace(s)

	// 3. Unwrap async state machines: Type+<M>d__N.MoveNext becomes Type.M.
	if stateMachineRe.MatchString(s) {
		s = stateMachineRe.ReplaceAllString(s, ".$1")
		s = moveNextRe.ReplaceAllString(s, "")
	}

	// 4. Collapse closure containers to a stable placeholder.
	s = closureRe.ReplaceAllString(s, ClosurePlaceholder)

	// 5. Strip generic arity markers.
	s = genericArityRe.ReplaceAllString(s, "")

	// 6. Nested types compare like top-level types.
	s = strings.ReplaceAll(s, "+", ".")

	// 7. Parameters are not part of the canonical key.
	if idx := strings.Index(s, "("); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
