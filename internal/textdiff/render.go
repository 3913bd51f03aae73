package textdiff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Whitespace glyphs used in rendered lines. Substituting them keeps a
// report unambiguous even when the only difference is invisible.
const (
	glyphSpace = '·'
	glyphTab   = '→'
	glyphCR    = '␍'
	glyphLF    = '␊'
)

// Separator divides rendered blocks.
const Separator = "=========="

// RenderOptions controls report formatting. Color is off by default so
// failure logs stay byte-stable.
type RenderOptions struct {
	Color bool
}

var (
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
)

// Render formats blocks into the final report: one header per block
// stating the first affected line, then its entries prefixed '-'
// (expected only) or '+' (actual only), whitespace made visible.
func Render(blocks []Block, opts RenderOptions) string {
	if len(blocks) == 0 {
		return ""
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString(Separator)
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "@@ line %d @@\n", block.Start)
		for _, e := range block.Entries {
			line := renderEntry(e)
			if opts.Color {
				if e.Kind == Removed {
					line = removedColor.Sprint(line)
				} else {
					line = addedColor.Sprint(line)
				}
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Report is the one-call form: diff expected against actual and render
// the result. Equal inputs yield "".
func Report(expected, actual string, opts RenderOptions) string {
	return Render(Diff(expected, actual), opts)
}

func renderEntry(e Entry) string {
	prefix := byte('-')
	if e.Kind == Added {
		prefix = '+'
	}
	var b strings.Builder
	b.Grow(len(e.Text) + 1)
	b.WriteByte(prefix)
	b.WriteString(MakeVisible(e.Text))
	return b.String()
}

// MakeVisible substitutes space, tab, carriage return and line feed
// with visible glyphs.
func MakeVisible(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ':
			b.WriteRune(glyphSpace)
		case '\t':
			b.WriteRune(glyphTab)
		case '\r':
			b.WriteRune(glyphCR)
		case '\n':
			b.WriteRune(glyphLF)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
