// Package symbols resolves optional source locations for method records.
// Location lookup is advisory: providers never fail extraction, they
// simply report that no location is known.
package symbols

import "github.com/endjin/deadcode/pkg/models"

// Locator maps a method back to its source declaration. Implementations
// must not return errors; missing or malformed symbol data means
// ok=false, never a failure.
type Locator interface {
	Locate(module, typeName, methodName string) (*models.SourceLocation, bool)
}

// NopLocator never knows a location. Used when neither a symbol index
// nor a source tree is configured.
type NopLocator struct{}

// Locate always reports no location.
func (NopLocator) Locate(module, typeName, methodName string) (*models.SourceLocation, bool) {
	return nil, false
}

// Chain consults locators in order and returns the first hit.
type Chain []Locator

// Locate returns the first known location among the chained providers.
func (c Chain) Locate(module, typeName, methodName string) (*models.SourceLocation, bool) {
	for _, l := range c {
		if loc, ok := l.Locate(module, typeName, methodName); ok {
			return loc, true
		}
	}
	return nil, false
}
