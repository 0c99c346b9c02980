package extract

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/jmylchreest/mdextract/internal/logger"
)

// Extractor converts HTML documents into Markdown holding the primary content.
type Extractor struct {
	config *Config
	layout Layout
	stats  *Stats
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLayout sets the width source used by the role="complementary" rule.
// The default is StyleLayout.
func WithLayout(l Layout) Option {
	return func(e *Extractor) {
		e.layout = l
	}
}

// New creates a new Extractor with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config, opts ...Option) *Extractor {
	if config == nil {
		config = DefaultConfig()
	}
	e := &Extractor{
		config: config,
		layout: StyleLayout{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the converter name for logging.
func (e *Extractor) Name() string {
	return "extract"
}

// Config returns the configuration in use.
func (e *Extractor) Config() *Config {
	return e.config
}

// Convert parses htmlContent and returns its Markdown. It never fails: input
// that cannot be read produces an empty string.
func (e *Extractor) Convert(htmlContent string) (string, error) {
	return e.ExtractWithStats(htmlContent).Content, nil
}

// Stats returns the stats from the last extraction.
func (e *Extractor) Stats() *Stats {
	return e.stats
}

// ExtractWithStats parses htmlContent and runs the extraction, returning the
// Markdown with detailed stats and warnings.
func (e *Extractor) ExtractWithStats(htmlContent string) *Result {
	startTime := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(htmlContent)

	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	result.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		result.Error = err
		result.AddWarning("parse", "HTML parse failed, returning empty content", err.Error())
		result.Stats.TotalDuration = time.Since(startTime)
		e.stats = result.Stats
		return result
	}

	e.extract(doc.Nodes[0], result)
	result.Stats.TotalDuration = time.Since(startTime)
	return result
}

// ExtractDocument runs the extraction over an already parsed document.
func (e *Extractor) ExtractDocument(doc *goquery.Document) *Result {
	if doc == nil || len(doc.Nodes) == 0 {
		return e.ExtractNode(nil)
	}
	return e.ExtractNode(doc.Nodes[0])
}

// ExtractNode runs the extraction with top as the whole document. top is
// usually a document node but may be any element, in which case it stands in
// for the body when no body is found below it.
func (e *Extractor) ExtractNode(top *html.Node) *Result {
	startTime := time.Now()
	result := &Result{Stats: NewStats()}
	e.extract(top, result)
	result.Stats.TotalDuration = time.Since(startTime)
	return result
}

// Render returns the post-processed Markdown for the subtree at n, without
// root selection or fallback.
func (e *Extractor) Render(n *html.Node) string {
	if n == nil {
		return ""
	}
	r := newRenderer(e.config, e.layout, enclosingBody(n), nil)
	return PostProcess(r.render(n))
}

// extract runs the fallback cascade and fills result.
func (e *Extractor) extract(top *html.Node, result *Result) {
	extractStart := time.Now()
	stats := result.Stats
	defer func() {
		stats.OutputBytes = len(result.Content)
		stats.ExtractDuration = time.Since(extractStart)
		e.stats = stats
	}()

	if top == nil {
		return
	}

	cfg := e.config
	body := findBody(top)
	if body == nil {
		body = top
	}
	r := newRenderer(cfg, e.layout, body, stats)

	if cfg.HideExcluded {
		stats.HiddenElements = r.hide(top)
	}

	root, label := selectRoot(top, cfg.RootSelectors, func(selector string, err error) {
		result.AddWarning("root", "invalid root selector skipped", selector+": "+err.Error())
	})
	stats.Root = label

	// Stage 1: the selected root with the full rule set.
	content := PostProcess(r.render(root))
	stage := StagePrimary
	stats.Attempts = append(stats.Attempts, Attempt{Stage: StagePrimary, Root: label, Length: charCount(content)})
	selected := 0
	logger.Debug("primary extraction", "root", label, "length", charCount(content))

	if !cfg.DisableFallback {
		// Stage 2: the whole body, same rules.
		if charCount(content) < cfg.MinContentLength && root != body {
			relaxed := PostProcess(r.render(body))
			stats.Attempts = append(stats.Attempts, Attempt{Stage: StageRelaxed, Root: rootBody, Length: charCount(relaxed)})
			logger.Debug("relaxed extraction", "length", charCount(relaxed), "previous", charCount(content))
			if charCount(relaxed) > charCount(content) {
				content = relaxed
				stage = StageRelaxed
				selected = len(stats.Attempts) - 1
			}
		}

		// Stage 3: text blocks harvested from the whole document.
		if charCount(content) < cfg.MinContentLength {
			harvested := e.harvest(top, result)
			stats.Attempts = append(stats.Attempts, Attempt{Stage: StageHarvest, Root: rootDocument, Length: charCount(harvested)})
			logger.Debug("harvest extraction", "blocks", stats.HarvestBlocks, "length", charCount(harvested))
			if charCount(harvested) > charCount(content) {
				content = harvested
				stage = StageHarvest
				selected = len(stats.Attempts) - 1
			}
		}
	}

	stats.Attempts[selected].Selected = true
	stats.Stage = stage
	result.Content = content
}

// harvest collects the trimmed text of every element matched by the harvest
// selectors, skipping anything inside an excluded tag, short blocks and exact
// duplicates. Blocks are joined by blank lines in first-seen order.
func (e *Extractor) harvest(top *html.Node, result *Result) string {
	cfg := e.config
	stats := result.Stats
	doc := goquery.NewDocumentFromNode(top)
	chrome := strings.Join(cfg.ExcludedTags, ", ")

	var blocks []string
	seen := make(map[string]bool)

	for _, selector := range cfg.HarvestSelectors {
		m, err := cascadia.Compile(selector)
		if err != nil {
			result.AddWarning("harvest", "invalid harvest selector skipped", selector+": "+err.Error())
			continue
		}
		doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
			stats.HarvestMatches++
			if chrome != "" && s.Closest(chrome).Length() > 0 {
				return
			}
			text := strings.TrimSpace(s.Text())
			if charCount(text) <= cfg.MinHarvestLength || seen[text] {
				return
			}
			seen[text] = true
			blocks = append(blocks, text)
		})
	}

	stats.HarvestBlocks = len(blocks)
	return strings.Join(blocks, "\n\n")
}

// enclosingBody returns the body element containing n, if any.
func enclosingBody(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.Data == "body" {
			return cur
		}
	}
	return nil
}

// charCount measures lengths in characters rather than bytes.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
