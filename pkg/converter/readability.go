package converter

import (
	"bytes"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"

	"github.com/jmylchreest/mdextract/internal/logger"
	"github.com/jmylchreest/mdextract/pkg/extract"
)

// ReadabilityConfig configures the Readability converter.
type ReadabilityConfig struct {
	// Extract configures the renderer applied to the isolated article.
	// Nil selects extract.DefaultConfig().
	Extract *extract.Config
	// RawHTML returns the isolated article as formatted HTML instead of
	// Markdown, for chaining into another converter.
	RawHTML bool
	// MaxElemsToParse limits the number of nodes to parse (0 = no limit).
	MaxElemsToParse int
	// NTopCandidates is the number of top candidates to consider (default: 5).
	NTopCandidates int
	// CharThreshold is the minimum character count for valid content (default: 500).
	CharThreshold int
	// BaseURL is used for resolving relative URLs. If empty, URLs remain relative.
	BaseURL string
}

// Readability isolates the main article with go-readability (a port of
// Mozilla's Readability.js) and renders it with the extractor's Markdown
// rules. When readability finds no article the full extraction runs on the
// original document instead.
type Readability struct {
	cfg       ReadabilityConfig
	parser    readability.Parser
	extractor *extract.Extractor
}

// NewReadability creates a new Readability converter.
// Pass nil for default configuration.
func NewReadability(cfg *ReadabilityConfig) *Readability {
	if cfg == nil {
		cfg = &ReadabilityConfig{}
	}

	parser := readability.NewParser()
	if cfg.MaxElemsToParse > 0 {
		parser.MaxElemsToParse = cfg.MaxElemsToParse
	}
	if cfg.NTopCandidates > 0 {
		parser.NTopCandidates = cfg.NTopCandidates
	}
	if cfg.CharThreshold > 0 {
		parser.CharThresholds = cfg.CharThreshold
	}

	return &Readability{
		cfg:       *cfg,
		parser:    parser,
		extractor: extract.New(cfg.Extract),
	}
}

// Convert extracts the article and returns it as Markdown, or as HTML when
// RawHTML is set.
func (r *Readability) Convert(htmlContent string) (string, error) {
	var baseURL *url.URL
	if r.cfg.BaseURL != "" {
		if u, err := url.Parse(r.cfg.BaseURL); err == nil {
			baseURL = u
		}
	}

	article, err := r.parser.Parse(strings.NewReader(htmlContent), baseURL)
	if err != nil || article.Node == nil {
		logger.Debug("readability found no article, using full extraction", "error", err)
		if r.cfg.RawHTML {
			return htmlContent, nil
		}
		return r.extractor.Convert(htmlContent)
	}

	if r.cfg.RawHTML {
		var buf bytes.Buffer
		if err := html.Render(&buf, article.Node); err != nil {
			return htmlContent, nil
		}
		return gohtml.Format(buf.String()), nil
	}

	return r.extractor.Render(article.Node), nil
}

// Name returns the converter type.
func (r *Readability) Name() string {
	return EngineReadability
}
