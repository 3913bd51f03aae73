// Package markup turns annotated snippet text into clean text plus the
// ordered set of spans the annotations denote. Markers are inline
// delimiter pairs (default `[|` / `|]`); the delimiters themselves are
// never part of the clean text, and every span offset is relative to
// the clean text.
package markup

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"lintkit/internal/source"
)

// Delimiters is the marker pair used to annotate a snippet.
type Delimiters struct {
	Open  string
	Close string
}

// Default is the conventional marker pair.
var Default = Delimiters{Open: "[|", Close: "|]"}

func (d Delimiters) validate() error {
	if d.Open == "" || d.Close == "" {
		return fmt.Errorf("markup: delimiters must be non-empty")
	}
	if d.Open == d.Close {
		// Nesting detection is impossible with identical delimiters.
		return fmt.Errorf("markup: open and close delimiters must differ")
	}
	return nil
}

// Span is a contiguous character range in the clean text.
// Ordinal preserves left-to-right discovery order.
type Span struct {
	Start   int
	Length  int
	Ordinal int
}

// End returns the exclusive end offset.
func (s Span) End() int {
	return s.Start + s.Length
}

// ToSource converts the span into a source.Span within file.
func (s Span) ToSource(file source.FileID) source.Span {
	start, err := safecast.Conv[uint32](s.Start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	end, err := safecast.Conv[uint32](s.End())
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: file, Start: start, End: end}
}

// Document is the result of parsing annotated text: the text with all
// markers stripped, and the spans the markers denoted, sorted by start.
type Document struct {
	Clean string
	Spans []Span
}

// SourceSpans returns the document's spans as source.Spans within file.
func (d *Document) SourceSpans(file source.FileID) []source.Span {
	out := make([]source.Span, len(d.Spans))
	for i, s := range d.Spans {
		out[i] = s.ToSource(file)
	}
	return out
}

// MalformedMarkupError reports unmatched or nested markers. Offset is
// the byte position in the raw annotated text.
type MalformedMarkupError struct {
	Offset int
	Reason string
}

func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("malformed markup at offset %d: %s", e.Offset, e.Reason)
}

// Parse resolves markers using the default delimiters.
func Parse(text string) (*Document, error) {
	return ParseWith(text, Default)
}

// ParseWith scans text left to right, stripping delimiters and emitting
// one span per marker pair. Zero markers is legal. Nested markers are
// rejected: silently misparsing them would corrupt every downstream
// span-based assertion.
func ParseWith(text string, delims Delimiters) (*Document, error) {
	if err := delims.validate(); err != nil {
		return nil, err
	}

	var clean strings.Builder
	clean.Grow(len(text))

	spans := make([]Span, 0, 2)
	openClean := -1 // clean-text offset of the pending open marker
	openRaw := 0    // raw-text offset, for error reporting

	i := 0
	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], delims.Open):
			if openClean >= 0 {
				return nil, &MalformedMarkupError{
					Offset: i,
					Reason: fmt.Sprintf("nested %q before %q closing the marker at offset %d", delims.Open, delims.Close, openRaw),
				}
			}
			openClean = clean.Len()
			openRaw = i
			i += len(delims.Open)
		case strings.HasPrefix(text[i:], delims.Close):
			if openClean < 0 {
				return nil, &MalformedMarkupError{
					Offset: i,
					Reason: fmt.Sprintf("%q without a preceding %q", delims.Close, delims.Open),
				}
			}
			spans = append(spans, Span{
				Start:   openClean,
				Length:  clean.Len() - openClean,
				Ordinal: len(spans),
			})
			openClean = -1
			i += len(delims.Close)
		default:
			clean.WriteByte(text[i])
			i++
		}
	}

	if openClean >= 0 {
		return nil, &MalformedMarkupError{
			Offset: openRaw,
			Reason: fmt.Sprintf("%q without a matching %q", delims.Open, delims.Close),
		}
	}

	return &Document{Clean: clean.String(), Spans: spans}, nil
}
