// Package textdiff computes and renders the exact line-level difference
// between an expected and an actual text. Lines keep their original
// line-ending bytes, so a CRLF-vs-LF divergence is itself a reported
// difference, and rendering substitutes whitespace with visible glyphs
// so the report is unambiguous.
package textdiff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies one differing line.
type Kind uint8

const (
	// Removed marks a line present in the expected text only.
	Removed Kind = iota
	// Added marks a line present in the actual text only.
	Added
)

func (k Kind) String() string {
	if k == Removed {
		return "removed"
	}
	return "added"
}

// Entry is one differing line. Line is 1-based within the entry's own
// sequence (expected for Removed, actual for Added). Text includes the
// original trailing line-ending bytes, if any.
type Entry struct {
	Line int
	Kind Kind
	Text string
}

// Block groups adjacent differing lines. Start is the first affected
// line number.
type Block struct {
	Start   int
	Entries []Entry
}

// Diff aligns expected and actual line sequences with an exact
// longest-common-subsequence edit script and returns the differing
// lines grouped into blocks. Equal inputs yield zero blocks.
func Diff(expected, actual string) []Block {
	if expected == actual {
		return nil
	}

	dmp := diffmatchpatch.New()
	// The library's default 1s budget permits approximate results;
	// failure reports must be reproducible byte-for-byte.
	dmp.DiffTimeout = 0

	chars1, chars2, lineArray := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var blocks []Block
	var current *Block
	expLine, actLine := 1, 1

	flush := func() {
		if current != nil && len(current.Entries) > 0 {
			blocks = append(blocks, *current)
		}
		current = nil
	}
	add := func(e Entry) {
		if current == nil {
			current = &Block{Start: e.Line}
		}
		current.Entries = append(current.Entries, e)
	}

	for _, d := range diffs {
		lines := splitKeepEndings(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			// Any matching line makes the gap between changed line
			// numbers exceed 1, which ends the block.
			if len(lines) > 0 {
				flush()
			}
			expLine += len(lines)
			actLine += len(lines)
		case diffmatchpatch.DiffDelete:
			for _, line := range lines {
				add(Entry{Line: expLine, Kind: Removed, Text: line})
				expLine++
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				add(Entry{Line: actLine, Kind: Added, Text: line})
				actLine++
			}
		}
	}
	flush()

	return blocks
}

// splitKeepEndings splits text after every '\n', keeping the newline
// (and any preceding '\r') attached to its line. A trailing fragment
// without a newline is a line of its own.
func splitKeepEndings(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
