package schema

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spektr-org/statboard/dataset"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic column classification
// ============================================================================
// Inspects a loaded Dataset and describes each column. No configuration.
//
// Classification pipeline per column:
//   1. Drop missing values, count them
//   2. Kind: numeric if every remaining value is a number, else categorical
//      (empty when nothing remains)
//   3. Cardinality → hint, identifier detection
//   4. Pattern matching on text → temporal columns (months, quarters, dates)
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	Name       string // Dataset name (otherwise "Auto-discovered Dataset")
	MaxSamples int    // Sample values kept per column. Default: 10
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		MaxSamples: 10,
	}
}

// Discover describes every column of ds.
func Discover(ds *dataset.Dataset, opts ...DiscoverOptions) *Config {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.MaxSamples <= 0 {
		opt.MaxSamples = 10
	}

	config := &Config{
		Name:         opt.Name,
		Rows:         ds.Len(),
		DiscoveredAt: time.Now().Format(time.RFC3339),
	}
	if config.Name == "" {
		config.Name = "Auto-discovered Dataset"
	}

	for _, name := range ds.Columns() {
		values, _ := ds.Column(name)
		config.Columns = append(config.Columns, analyzeColumn(name, values, opt.MaxSamples))
	}
	return config
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(name string, values []any, maxSamples int) ColumnMeta {
	col := ColumnMeta{
		Name:        name,
		DisplayName: toDisplayName(name),
	}

	uniqueSet := make(map[string]bool)
	present, numeric := 0, 0
	for _, v := range values {
		if dataset.IsMissing(v) {
			col.Missing++
			continue
		}
		present++
		if dataset.IsNumeric(v) {
			numeric++
		}
		uniqueSet[dataset.Format(v)] = true
	}

	col.Distinct = len(uniqueSet)
	col.SampleValues = collectSamples(uniqueSet, maxSamples)

	switch {
	case present == 0:
		col.Kind = KindEmpty
		return col
	case numeric == present:
		col.Kind = KindNumeric
	default:
		col.Kind = KindCategorical
		col.IsTemporal, col.TemporalFormat = detectTemporalPattern(col.SampleValues)
	}

	// Every value unique → likely an ID
	col.IsIdentifier = col.Distinct == present && present > 10

	switch {
	case col.Distinct <= 10:
		col.CardinalityHint = "low"
	case col.Distinct <= 100:
		col.CardinalityHint = "medium"
	default:
		col.CardinalityHint = "high"
	}

	return col
}

// ============================================================================
// SPECIAL PATTERN DETECTION
// ============================================================================

var temporalPatterns = []struct {
	re     *regexp.Regexp
	format string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([ T]\d{2}:\d{2}(:\d{2})?)?`), "yyyy-MM-dd"}, // 2026-01-15
	{regexp.MustCompile(`^[A-Z][a-z]{2}-\d{4}$`), "MMM-yyyy"},                        // Jan-2026
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "yyyy-MM"},                                  // 2026-01
	{regexp.MustCompile(`^Q[1-4]-\d{4}$`), "QN-yyyy"},                                 // Q1-2026
	{regexp.MustCompile(`^Q[1-4]\s+\d{4}$`), "QN yyyy"},                               // Q1 2026
	{regexp.MustCompile(`^[A-Z][a-z]+ \d{4}$`), "MMMM yyyy"},                          // January 2026
}

// detectTemporalPattern checks if values match known date/month/quarter patterns.
func detectTemporalPattern(samples []string) (bool, string) {
	if len(samples) == 0 {
		return false, ""
	}

	for _, pattern := range temporalPatterns {
		matches := 0
		for _, s := range samples {
			if pattern.re.MatchString(strings.TrimSpace(s)) {
				matches++
			}
		}
		if float64(matches)/float64(len(samples)) >= 0.8 {
			return true, pattern.format
		}
	}

	return false, ""
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toDisplayName cleans a header for human display.
// "story_points" → "Story Points", "assignee" → "Assignee"
func toDisplayName(s string) string {
	// If already has spaces/mixed case, just trim
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	// Convert snake_case to Title Case
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
