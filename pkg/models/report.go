package models

import "time"

// UnusedMethodRecord is a method confirmed absent from every execution
// trace, plus textual hints about code that may depend on it. The hint
// list is empty by default and reserved for downstream enrichment.
type UnusedMethodRecord struct {
	ID           string       `json:"id"` // stable content hash of the canonical key
	Method       MethodRecord `json:"method"`
	Dependencies []string     `json:"dependencies"`
}

// File returns the source file of the underlying record, if known.
func (u UnusedMethodRecord) File() (string, bool) {
	if u.Method.Location == nil {
		return "", false
	}
	return u.Method.Location.File, true
}

// Line returns the declaration line of the underlying record, if known.
func (u UnusedMethodRecord) Line() (uint32, bool) {
	if u.Method.Location == nil {
		return 0, false
	}
	return u.Method.Location.DeclarationLine, true
}

// ReportMetadata describes the inputs of an analysis run.
type ReportMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Modules     []string  `json:"modules"`
	Scenarios   []string  `json:"scenarios"`
	Revision    string    `json:"revision,omitempty"`
}

// RedundancyReport is the result of reconciling a method inventory with
// an executed-method set. It is constructed fresh per analysis run and
// only grows by appending during the comparison pass.
type RedundancyReport struct {
	Metadata ReportMetadata       `json:"metadata"`
	Unused   []UnusedMethodRecord `json:"unused"`
}

// NewRedundancyReport creates an empty report stamped with the current time.
func NewRedundancyReport() *RedundancyReport {
	return &RedundancyReport{
		Metadata: ReportMetadata{GeneratedAt: time.Now().UTC()},
		Unused:   make([]UnusedMethodRecord, 0),
	}
}

// Append adds an unused method to the report.
func (r *RedundancyReport) Append(u UnusedMethodRecord) {
	r.Unused = append(r.Unused, u)
}

// ByTier groups unused methods by safety tier, preserving report order.
func (r *RedundancyReport) ByTier() map[SafetyTier][]UnusedMethodRecord {
	groups := make(map[SafetyTier][]UnusedMethodRecord)
	for _, u := range r.Unused {
		groups[u.Method.Tier] = append(groups[u.Method.Tier], u)
	}
	return groups
}

// ReportSummary provides aggregate statistics over a report.
type ReportSummary struct {
	Total        int            `json:"total"`
	High         int            `json:"high"`
	Medium       int            `json:"medium"`
	Low          int            `json:"low"`
	WithLocation int            `json:"with_location"`
	ByModule     map[string]int `json:"by_module"`
}

// Summary computes aggregate statistics. Methods without a source
// location are counted here even though they are omitted from the
// persisted output arrays.
func (r *RedundancyReport) Summary() ReportSummary {
	s := ReportSummary{ByModule: make(map[string]int)}
	for _, u := range r.Unused {
		s.Total++
		s.ByModule[u.Method.Module]++
		if u.Method.Location != nil {
			s.WithLocation++
		}
		switch u.Method.Tier {
		case TierHigh:
			s.High++
		case TierMedium:
			s.Medium++
		case TierLow:
			s.Low++
		}
	}
	return s
}
