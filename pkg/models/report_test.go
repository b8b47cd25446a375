package models

import "testing"

func loc(file string, line uint32) *SourceLocation {
	return &SourceLocation{File: file, DeclarationLine: line, BodyStartLine: line + 1, BodyEndLine: line + 5}
}

func TestRedundancyReport_Summary(t *testing.T) {
	r := NewRedundancyReport()
	r.Append(UnusedMethodRecord{Method: MethodRecord{Module: "app.dll", Tier: TierHigh, Location: loc("a.cs", 10)}})
	r.Append(UnusedMethodRecord{Method: MethodRecord{Module: "app.dll", Tier: TierHigh}})
	r.Append(UnusedMethodRecord{Method: MethodRecord{Module: "lib.dll", Tier: TierMedium, Location: loc("b.cs", 20)}})
	r.Append(UnusedMethodRecord{Method: MethodRecord{Module: "lib.dll", Tier: TierLow}})

	s := r.Summary()
	if s.Total != 4 {
		t.Errorf("Total = %d, expected 4", s.Total)
	}
	if s.High != 2 || s.Medium != 1 || s.Low != 1 {
		t.Errorf("tier counts = %d/%d/%d, expected 2/1/1", s.High, s.Medium, s.Low)
	}
	if s.WithLocation != 2 {
		t.Errorf("WithLocation = %d, expected 2", s.WithLocation)
	}
	if s.ByModule["app.dll"] != 2 || s.ByModule["lib.dll"] != 2 {
		t.Errorf("ByModule = %v", s.ByModule)
	}
}

func TestRedundancyReport_ByTier(t *testing.T) {
	r := NewRedundancyReport()
	r.Append(UnusedMethodRecord{Method: MethodRecord{Name: "A", Tier: TierHigh}})
	r.Append(UnusedMethodRecord{Method: MethodRecord{Name: "B", Tier: TierLow}})
	r.Append(UnusedMethodRecord{Method: MethodRecord{Name: "C", Tier: TierHigh}})

	groups := r.ByTier()
	if len(groups[TierHigh]) != 2 {
		t.Errorf("high tier should hold 2 records, got %d", len(groups[TierHigh]))
	}
	if groups[TierHigh][0].Method.Name != "A" || groups[TierHigh][1].Method.Name != "C" {
		t.Error("grouping should preserve report order")
	}
	if len(groups[TierLow]) != 1 {
		t.Errorf("low tier should hold 1 record, got %d", len(groups[TierLow]))
	}
}

func TestUnusedMethodRecord_LocationAccessors(t *testing.T) {
	located := UnusedMethodRecord{Method: MethodRecord{Location: loc("src/a.cs", 42)}}
	if f, ok := located.File(); !ok || f != "src/a.cs" {
		t.Errorf("File() = %q, %v", f, ok)
	}
	if l, ok := located.Line(); !ok || l != 42 {
		t.Errorf("Line() = %d, %v", l, ok)
	}

	unlocated := UnusedMethodRecord{Method: MethodRecord{}}
	if _, ok := unlocated.File(); ok {
		t.Error("File() should report absent for record without location")
	}
	if _, ok := unlocated.Line(); ok {
		t.Error("Line() should report absent for record without location")
	}
}
