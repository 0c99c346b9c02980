package extract

import (
	"strings"
	"testing"
	"time"
)

func TestStatsCounters(t *testing.T) {
	s := NewStats()
	s.RecordExclusion("tag", "NAV")
	s.RecordExclusion("tag", "script")
	s.RecordExclusion("class", "div")

	if got := s.TotalExcluded(); got != 3 {
		t.Errorf("expected 3 exclusions, got %d", got)
	}
	if s.ExcludedByTag["nav"] != 1 {
		t.Errorf("expected tag names to be lowercased, got %v", s.ExcludedByTag)
	}
	if s.ExcludedByRule["tag"] != 2 || s.ExcludedByRule["class"] != 1 {
		t.Errorf("unexpected rule counts %v", s.ExcludedByRule)
	}
}

func TestStatsReductionPercent(t *testing.T) {
	tests := []struct {
		in, out int
		want    float64
	}{
		{0, 0, 0},
		{1000, 250, 75},
		{100, 100, 0},
	}
	for _, tt := range tests {
		s := &Stats{InputBytes: tt.in, OutputBytes: tt.out}
		if got := s.ReductionPercent(); got != tt.want {
			t.Errorf("ReductionPercent(%d -> %d): expected %v, got %v", tt.in, tt.out, tt.want, got)
		}
	}
}

func TestStatsString(t *testing.T) {
	s := NewStats()
	s.InputBytes = 2000
	s.OutputBytes = 500
	s.Root = "main"
	s.Stage = StageRelaxed
	s.Attempts = []Attempt{
		{Stage: StagePrimary, Root: "main", Length: 12},
		{Stage: StageRelaxed, Root: "body", Length: 480, Selected: true},
	}
	s.ElementsVisited = 40
	s.RecordExclusion("tag", "nav")
	s.RecordExclusion("class", "div")
	s.ExtractDuration = 1500 * time.Microsecond

	out := s.String()
	for _, want := range []string{
		"Size: 2000 -> 500 bytes (75.0% reduction)",
		"Root: main, stage: relaxed",
		"* relaxed  root=body length=480",
		"Elements: 40 visited, 2 excluded",
		"Excluded by rule: class=1, tag=1",
		"extract=1.5ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Harvest:") {
		t.Error("harvest line should be omitted without matches")
	}
}

func TestResultWarnings(t *testing.T) {
	r := &Result{}
	if r.HasWarnings() {
		t.Error("expected no warnings")
	}

	r.AddWarning("root", "invalid selector", "[[broken")
	r.AddWarning("parse", "empty input", "")

	if !r.HasWarnings() || len(r.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", r.Warnings)
	}
	if got := r.Warnings[0].String(); got != "[root] invalid selector (context: [[broken)" {
		t.Errorf("unexpected warning string %q", got)
	}
	if got := r.Warnings[1].String(); got != "[parse] empty input" {
		t.Errorf("unexpected warning string %q", got)
	}
}
