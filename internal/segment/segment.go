// Package segment splits raw bulletin text into notice-aligned chunks that fit
// a single extraction request.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultBudget is the maximum number of characters per chunk.
	DefaultBudget = 25000
	// DefaultMinFragment is the length at or below which a fragment is noise.
	DefaultMinFragment = 50
)

// Options tunes segmentation. Zero values fall back to the defaults.
type Options struct {
	Budget      int
	MinFragment int
}

// DefaultOptions returns the production segmentation settings.
func DefaultOptions() Options {
	return Options{Budget: DefaultBudget, MinFragment: DefaultMinFragment}
}

func (o Options) withDefaults() Options {
	if o.Budget <= 0 {
		o.Budget = DefaultBudget
	}
	if o.MinFragment <= 0 {
		o.MinFragment = DefaultMinFragment
	}
	return o
}

// anchorPattern matches the phrases that open a new auction notice. The
// anchor must start a line and must not run into another letter, so
// "Exposición" does not count as "EXP".
var anchorPattern = regexp.MustCompile(
	`(?im)^[ \t]*(?:expediente|exp|juzgado|al monto de|se hace saber|referencia n[°º]|en este despacho)(?:[^\p{L}]|$)`,
)

var whitespace = regexp.MustCompile(`\s+`)

// CompressText collapses every run of whitespace into one space and trims the ends.
func CompressText(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// Fragments splits text in front of every anchor phrase. The anchor stays with
// the text that follows it; fragments are returned uncompressed.
func Fragments(text string) []string {
	if text == "" {
		return nil
	}

	matches := anchorPattern.FindAllStringIndex(text, -1)
	cuts := make([]int, 0, len(matches)+2)
	cuts = append(cuts, 0)
	for _, m := range matches {
		if m[0] > cuts[len(cuts)-1] {
			cuts = append(cuts, m[0])
		}
	}
	cuts = append(cuts, len(text))

	fragments := make([]string, 0, len(cuts)-1)
	for i := 0; i < len(cuts)-1; i++ {
		fragments = append(fragments, text[cuts[i]:cuts[i+1]])
	}
	return fragments
}

// Segment turns a bulletin into chunks no longer than opts.Budget characters.
// Fragments are compressed, noise is dropped and the rest is packed greedily
// in order. A fragment longer than the budget becomes a chunk of its own.
func Segment(text string, opts Options) []string {
	opts = opts.withDefaults()

	var kept []string
	for _, fragment := range Fragments(text) {
		compressed := CompressText(fragment)
		if length(compressed) > opts.MinFragment {
			kept = append(kept, compressed)
		}
	}

	if len(kept) == 0 {
		whole := CompressText(text)
		if length(whole) > opts.MinFragment {
			return []string{whole}
		}
		return []string{}
	}

	chunks := make([]string, 0, len(kept))
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, fragment := range kept {
		fragmentLen := length(fragment)

		switch {
		case fragmentLen > opts.Budget:
			flush()
			chunks = append(chunks, fragment)
		case currentLen == 0:
			current.WriteString(fragment)
			currentLen = fragmentLen
		case currentLen+1+fragmentLen <= opts.Budget:
			current.WriteByte('\n')
			current.WriteString(fragment)
			currentLen += 1 + fragmentLen
		default:
			flush()
			current.WriteString(fragment)
			currentLen = fragmentLen
		}
	}
	flush()

	return chunks
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
