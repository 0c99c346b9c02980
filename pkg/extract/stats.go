package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stage identifies a step of the fallback cascade.
type Stage string

const (
	StagePrimary Stage = "primary"
	StageRelaxed Stage = "relaxed"
	StageHarvest Stage = "harvest"
)

// Attempt records one candidate produced by the cascade.
type Attempt struct {
	Stage    Stage  `json:"stage" yaml:"stage"`
	Root     string `json:"root" yaml:"root"` // root selector, "body" or "document"
	Length   int    `json:"length" yaml:"length"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// Stats captures metrics about an extraction.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Root is the selector that chose the primary root.
	Root string `json:"root" yaml:"root"`

	// Stage is the cascade stage whose candidate became the output.
	Stage    Stage     `json:"stage" yaml:"stage"`
	Attempts []Attempt `json:"attempts" yaml:"attempts"`

	// Walk counters
	ElementsVisited int            `json:"elements_visited" yaml:"elements_visited"`
	ExcludedByRule  map[string]int `json:"excluded_by_rule" yaml:"excluded_by_rule"` // rule -> count
	ExcludedByTag   map[string]int `json:"excluded_by_tag" yaml:"excluded_by_tag"`   // tag -> count
	HiddenElements  int            `json:"hidden_elements,omitempty" yaml:"hidden_elements,omitempty"`

	// Harvest counters
	HarvestMatches int `json:"harvest_matches,omitempty" yaml:"harvest_matches,omitempty"`
	HarvestBlocks  int `json:"harvest_blocks,omitempty" yaml:"harvest_blocks,omitempty"`

	// Timing
	ParseDuration   time.Duration `json:"parse_duration_ns" yaml:"parse_duration_ns"`
	ExtractDuration time.Duration `json:"extract_duration_ns" yaml:"extract_duration_ns"`
	TotalDuration   time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ExcludedByRule: make(map[string]int),
		ExcludedByTag:  make(map[string]int),
	}
}

// RecordExclusion records that an element was dropped by the named rule.
func (s *Stats) RecordExclusion(rule, tag string) {
	s.ExcludedByRule[rule]++
	s.ExcludedByTag[strings.ToLower(tag)]++
}

// TotalExcluded returns the number of excluded subtrees.
func (s *Stats) TotalExcluded() int {
	total := 0
	for _, count := range s.ExcludedByRule {
		total += count
	}
	return total
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent())
	fmt.Fprintf(&sb, "Root: %s, stage: %s\n", s.Root, s.Stage)

	for _, a := range s.Attempts {
		marker := " "
		if a.Selected {
			marker = "*"
		}
		fmt.Fprintf(&sb, " %s %-8s root=%s length=%d\n", marker, a.Stage, a.Root, a.Length)
	}

	fmt.Fprintf(&sb, "Elements: %d visited, %d excluded\n", s.ElementsVisited, s.TotalExcluded())
	if len(s.ExcludedByRule) > 0 {
		sb.WriteString("Excluded by rule: ")
		sb.WriteString(formatCounts(s.ExcludedByRule))
		sb.WriteString("\n")
	}
	if s.HarvestMatches > 0 {
		fmt.Fprintf(&sb, "Harvest: %d matches, %d blocks\n", s.HarvestMatches, s.HarvestBlocks)
	}

	fmt.Fprintf(&sb, "Timing: parse=%v, extract=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.ExtractDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond))

	return sb.String()
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, ", ")
}

// Warning represents a non-fatal issue encountered during extraction.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "parse", "root", "harvest"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context" yaml:"context"` // Selector or element that caused issue
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of an extraction.
type Result struct {
	// Content is the Markdown output, possibly empty.
	Content string `json:"content" yaml:"content"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Error is set when the input could not be read; Content is empty then.
	Error error `json:"-" yaml:"-"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
