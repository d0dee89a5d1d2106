// Package spam holds the cheap, rule based content checks run before a
// contact submission is validated.
package spam

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultKeywords are matched as whole words or phrases.
var DefaultKeywords = []string{
	"viagra", "cialis", "pharmacy", "casino", "poker", "lottery", "jackpot",
	"bitcoin investment", "crypto investment", "forex", "binary options",
	"payday loan", "cheap loans", "debt relief",
	"seo services", "backlinks", "rank your website", "first page of google",
	"buy followers", "increase traffic",
	"make money fast", "work from home", "earn extra cash", "100% free",
	"click here", "act now", "limited time offer", "risk-free",
	"porn", "xxx", "escort",
	"nigerian prince", "wire transfer", "inheritance fund",
}

const (
	DefaultMaxLinks       = 3
	DefaultMaxRepeatedRun = 10
)

var (
	linkPattern   = regexp.MustCompile(`https?://|www\.`)
	markupPattern = regexp.MustCompile(`<a\s+href|\[url=|\[link=`)
)

// HeuristicClassifier flags content by keywords, link density, link markup
// and long runs of a repeated character. It is pure and safe for concurrent use.
type HeuristicClassifier struct {
	keywords       *regexp.Regexp
	maxLinks       int
	maxRepeatedRun int
}

// Option configures a HeuristicClassifier.
type Option func(*HeuristicClassifier)

// WithKeywords replaces the keyword list.
func WithKeywords(words ...string) Option {
	return func(c *HeuristicClassifier) {
		c.keywords = compileKeywords(words)
	}
}

// WithMaxLinks sets how many links are tolerated.
func WithMaxLinks(n int) Option {
	return func(c *HeuristicClassifier) {
		if n >= 0 {
			c.maxLinks = n
		}
	}
}

// WithMaxRepeatedRun sets the longest tolerated run of one character.
func WithMaxRepeatedRun(n int) Option {
	return func(c *HeuristicClassifier) {
		if n > 0 {
			c.maxRepeatedRun = n
		}
	}
}

// NewHeuristicClassifier creates a classifier with the default rule set.
func NewHeuristicClassifier(opts ...Option) *HeuristicClassifier {
	c := &HeuristicClassifier{
		keywords:       compileKeywords(DefaultKeywords),
		maxLinks:       DefaultMaxLinks,
		maxRepeatedRun: DefaultMaxRepeatedRun,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsSpam expects lowercased content.
func (c *HeuristicClassifier) IsSpam(content string) bool {
	if content == "" {
		return false
	}
	if c.keywords != nil && c.keywords.MatchString(content) {
		return true
	}
	if markupPattern.MatchString(content) {
		return true
	}
	if len(linkPattern.FindAllStringIndex(content, c.maxLinks+1)) > c.maxLinks {
		return true
	}
	return longestRun(content) > c.maxRepeatedRun
}

// compileKeywords lowercases words into one alternation bounded by
// non-word characters, so it expects lowercased input. Returns nil for an
// empty list.
func compileKeywords(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	// \b does not work next to symbols like "%", so use explicit edges
	return regexp.MustCompile(`(?:^|[^\pL\pN])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\pL\pN])`)
}

// longestRun returns the longest run of one repeated non-space rune.
func longestRun(s string) int {
	var (
		prev    rune
		run     int
		longest int
	)
	for _, r := range s {
		if unicode.IsSpace(r) {
			prev, run = 0, 0
			continue
		}
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
