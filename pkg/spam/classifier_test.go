package spam

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHoneypotFilled(t *testing.T) {
	assert.False(t, IsHoneypotFilled(""))
	for _, value := range []string{" ", "\t", "\n", "  \t", "http://bot.example"} {
		assert.True(t, IsHoneypotFilled(value), "%q", value)
	}
}

func TestHeuristicClassifier(t *testing.T) {
	c := NewHeuristicClassifier()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"plain message", "jane doe jane@example.com hello checking in", false},
		{"empty", "", false},
		{"single link", "see my work at https://example.com", false},
		{"keyword", "best casino bonus today", true},
		{"phrase", "we offer seo services for your site", true},
		{"keyword inside a word", "the forexample variable", false},
		{"symbol keyword", "this is 100% free!", true},
		{"too many links", "http://a.io http://b.io https://c.io www.d.io", true},
		{"link markup", `nice <a href="http://x.io">site</a>`, true},
		{"bbcode", "[url=http://x.io]x[/url]", true},
		{"repeated run", "hello" + strings.Repeat("!", 11), true},
		{"run at limit", "hello" + strings.Repeat("!", 10), false},
		{"spaces do not count", "hello" + strings.Repeat(" ", 40) + "there", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsSpam(tt.content))
		})
	}
}

func TestHeuristicClassifierIsDeterministic(t *testing.T) {
	c := NewHeuristicClassifier()
	for _, content := range []string{"buy followers now", "a normal question about your project"} {
		assert.Equal(t, c.IsSpam(content), c.IsSpam(content))
	}
}

func TestHeuristicClassifierOptions(t *testing.T) {
	c := NewHeuristicClassifier(
		WithKeywords("golang jobs"),
		WithMaxLinks(0),
		WithMaxRepeatedRun(3),
	)

	assert.True(t, c.IsSpam("hiring: golang jobs inside"))
	assert.False(t, c.IsSpam("casino"), "default keywords are replaced")
	assert.True(t, c.IsSpam("see www.example.com"))
	assert.True(t, c.IsSpam("sooooo good"))
}

func TestHeuristicClassifierNoKeywords(t *testing.T) {
	c := NewHeuristicClassifier(WithKeywords())
	assert.False(t, c.IsSpam("casino"))
}

func TestHeuristicClassifierKeywordsAreLowercased(t *testing.T) {
	c := NewHeuristicClassifier(WithKeywords("  Golang JOBS "))

	assert.True(t, c.IsSpam("hiring: golang jobs inside"))
	assert.False(t, c.IsSpam("hiring: Golang JOBS inside"), "content must already be lowercased")
}
