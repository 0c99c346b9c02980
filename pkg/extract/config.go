// Package extract converts an HTML document into Markdown that keeps only the
// primary readable content. Navigation, headers, footers, asides and scripts are
// dropped while the document is walked; when too little text survives, the
// extractor retries against the whole body and finally harvests text blocks
// from the entire document.
package extract

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config defines all configuration options for the extractor.
type Config struct {
	// === Root selection ===

	// RootSelectors is the priority list of CSS selectors used to pick the
	// extraction root. The first selector with a match wins. The document body
	// is always the final fallback and does not need to be listed.
	RootSelectors []string `json:"root_selectors" yaml:"root_selectors" mapstructure:"root_selectors" validate:"dive,required"`

	// === Exclusion rules ===

	// ExcludedTags are element names whose whole subtree is dropped.
	ExcludedTags []string `json:"excluded_tags" yaml:"excluded_tags" mapstructure:"excluded_tags" validate:"dive,required"`

	// ChromeClassPatterns are substrings of the class attribute that mark an
	// element as page chrome.
	ChromeClassPatterns []string `json:"chrome_class_patterns" yaml:"chrome_class_patterns" mapstructure:"chrome_class_patterns" validate:"dive,required"`

	// ChromeIDs are exact id values that mark an element as page chrome.
	ChromeIDs []string `json:"chrome_ids" yaml:"chrome_ids" mapstructure:"chrome_ids" validate:"dive,required"`

	// ComplementaryWidthRatio excludes role="complementary" elements narrower
	// than this fraction of their parent. Zero disables the rule; Merge cannot
	// set it to zero, assign the field directly instead.
	ComplementaryWidthRatio float64 `json:"complementary_width_ratio" yaml:"complementary_width_ratio" mapstructure:"complementary_width_ratio" validate:"gte=0,lte=1"`

	// HideExcluded appends display:none to the style of every excluded element
	// before rendering. This mutates the input document.
	HideExcluded bool `json:"hide_excluded" yaml:"hide_excluded" mapstructure:"hide_excluded"`

	// === Fallback cascade ===

	// MinContentLength is the output length (in characters) below which the
	// fallback stages run. Default: 500.
	MinContentLength int `json:"min_content_length" yaml:"min_content_length" mapstructure:"min_content_length" validate:"gte=0"`

	// MinHarvestLength is the length a harvested text block must exceed to be
	// kept. Default: 20.
	MinHarvestLength int `json:"min_harvest_length" yaml:"min_harvest_length" mapstructure:"min_harvest_length" validate:"gte=0"`

	// HarvestSelectors are the content-bearing selectors scanned by the last
	// fallback stage.
	HarvestSelectors []string `json:"harvest_selectors" yaml:"harvest_selectors" mapstructure:"harvest_selectors" validate:"dive,required"`

	// DisableFallback renders the selected root only.
	DisableFallback bool `json:"disable_fallback" yaml:"disable_fallback" mapstructure:"disable_fallback"`
}

// DefaultConfig returns the full rule set: the complete root priority list,
// class/id/role chrome detection and the narrow-sidebar geometry rule.
func DefaultConfig() *Config {
	return &Config{
		RootSelectors: []string{
			".entry-content",
			".wp-block-post-content",
			"main article",
			"main",
			"article",
			`[role="main"]`,
			".content",
			".main-content",
			".page-content",
			".site-content",
			".post-content",
			".article-content",
			".body-content",
			"[data-content]",
			"[data-main-content]",
			".layout-container",
			".container",
			"#content",
			"#main",
			"#main-content",
		},

		ExcludedTags: []string{
			"header", "footer", "nav", "aside", "noscript", "script", "style",
		},

		ChromeClassPatterns: []string{
			"theme-header",
			"theme-footer",
			"site-header",
			"site-footer",
			"global-header",
			"global-footer",
			"loading-animation",
			"cookie-banner",
			"cookie-consent",
			"newsletter-popup",
			"modal-overlay",
		},

		ChromeIDs: []string{"header", "footer", "site-header", "site-footer"},

		ComplementaryWidthRatio: 0.4,

		MinContentLength: 500,
		MinHarvestLength: 20,
		HarvestSelectors: []string{
			"p", "h1", "h2", "h3", "h4", "h5", "h6",
			"li", "td", "th", "blockquote", "figcaption",
			`[class*="text"]`,
			`[class*="content"]`,
			`[class*="body"]`,
			`[class*="description"]`,
			`[class*="paragraph"]`,
		},
	}
}

// PresetSimple returns the earlier, simpler rule set: a short root list, no
// geometry rule, and excluded elements hidden in the source document.
func PresetSimple() *Config {
	cfg := DefaultConfig()
	cfg.RootSelectors = []string{
		".entry-content",
		"main article",
		"main",
		"article",
		`[role="main"]`,
		".content",
		"#content",
	}
	cfg.ComplementaryWidthRatio = 0
	cfg.HideExcluded = true
	return cfg
}

// PresetStrict renders the selected root only, without any fallback.
func PresetStrict() *Config {
	cfg := DefaultConfig()
	cfg.DisableFallback = true
	return cfg
}

// Preset returns the named preset. An empty name selects the default.
func Preset(name string) (*Config, error) {
	switch name {
	case "", "default":
		return DefaultConfig(), nil
	case "simple":
		return PresetSimple(), nil
	case "strict":
		return PresetStrict(), nil
	default:
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
}

var validate = validator.New()

// Validate checks the configuration for out-of-range values and empty selectors.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid extract config: %w", err)
	}
	return nil
}

// Merge merges another config into this one.
// Non-zero values from other override this config, so zero and false never
// override; selector and pattern lists are appended with duplicates dropped.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c

	if other.ComplementaryWidthRatio > 0 {
		merged.ComplementaryWidthRatio = other.ComplementaryWidthRatio
	}
	if other.MinContentLength > 0 {
		merged.MinContentLength = other.MinContentLength
	}
	if other.MinHarvestLength > 0 {
		merged.MinHarvestLength = other.MinHarvestLength
	}
	if other.HideExcluded {
		merged.HideExcluded = true
	}
	if other.DisableFallback {
		merged.DisableFallback = true
	}

	merged.RootSelectors = appendUnique(merged.RootSelectors, other.RootSelectors)
	merged.ExcludedTags = appendUnique(merged.ExcludedTags, other.ExcludedTags)
	merged.ChromeClassPatterns = appendUnique(merged.ChromeClassPatterns, other.ChromeClassPatterns)
	merged.ChromeIDs = appendUnique(merged.ChromeIDs, other.ChromeIDs)
	merged.HarvestSelectors = appendUnique(merged.HarvestSelectors, other.HarvestSelectors)

	return &merged
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if !seen[s] {
				out = append(out, s)
				seen[s] = true
			}
		}
	}
	return out
}
