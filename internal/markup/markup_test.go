package markup

import (
	"errors"
	"testing"

	"lintkit/internal/source"
)

func TestParse_CleanAndSpans(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantClean string
		wantSpans []Span
	}{
		{
			name:      "no markers round-trips",
			text:      "procedure Foo()\nbegin\nend;",
			wantClean: "procedure Foo()\nbegin\nend;",
			wantSpans: []Span{},
		},
		{
			name:      "empty input",
			text:      "",
			wantClean: "",
			wantSpans: []Span{},
		},
		{
			name:      "single marker offsets",
			text:      "ab[|cd|]ef",
			wantClean: "abcdef",
			wantSpans: []Span{{Start: 2, Length: 2, Ordinal: 0}},
		},
		{
			name:      "marker at start",
			text:      "[|ab|]cd",
			wantClean: "abcd",
			wantSpans: []Span{{Start: 0, Length: 2, Ordinal: 0}},
		},
		{
			name:      "marker at end",
			text:      "ab[|cd|]",
			wantClean: "abcd",
			wantSpans: []Span{{Start: 2, Length: 2, Ordinal: 0}},
		},
		{
			name:      "zero-length marker",
			text:      "a[||]b",
			wantClean: "ab",
			wantSpans: []Span{{Start: 1, Length: 0, Ordinal: 0}},
		},
		{
			name:      "two sibling markers keep discovery order",
			text:      "[|a|]b[|cc|]d",
			wantClean: "abccd",
			wantSpans: []Span{
				{Start: 0, Length: 1, Ordinal: 0},
				{Start: 2, Length: 2, Ordinal: 1},
			},
		},
		{
			name:      "offsets are clean-text relative after earlier markers",
			text:      "xx[|y|]zz[|w|]q",
			wantClean: "xxyzzwq",
			wantSpans: []Span{
				{Start: 2, Length: 1, Ordinal: 0},
				{Start: 5, Length: 1, Ordinal: 1},
			},
		},
		{
			name:      "line endings preserved verbatim",
			text:      "a\r\n[|b|]\r\nc",
			wantClean: "a\r\nb\r\nc",
			wantSpans: []Span{{Start: 3, Length: 1, Ordinal: 0}},
		},
		{
			name:      "marker spanning lines",
			text:      "a[|b\nc|]d",
			wantClean: "ab\ncd",
			wantSpans: []Span{{Start: 1, Length: 3, Ordinal: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.text, err)
			}
			if doc.Clean != tt.wantClean {
				t.Errorf("clean = %q, want %q", doc.Clean, tt.wantClean)
			}
			if len(doc.Spans) != len(tt.wantSpans) {
				t.Fatalf("got %d spans, want %d: %+v", len(doc.Spans), len(tt.wantSpans), doc.Spans)
			}
			for i, want := range tt.wantSpans {
				if doc.Spans[i] != want {
					t.Errorf("span[%d] = %+v, want %+v", i, doc.Spans[i], want)
				}
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantOffset int
	}{
		{name: "unmatched open", text: "a[|b", wantOffset: 1},
		{name: "unmatched close", text: "a|]b", wantOffset: 1},
		{name: "nested open", text: "[|a[|b|]c|]", wantOffset: 3},
		{name: "close after pair consumed", text: "[|a|]b|]", wantOffset: 6},
		{name: "only open", text: "[|", wantOffset: 0},
		{name: "only close", text: "|]", wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want MalformedMarkupError", tt.text)
			}
			var malformed *MalformedMarkupError
			if !errors.As(err, &malformed) {
				t.Fatalf("Parse(%q) error = %v, want *MalformedMarkupError", tt.text, err)
			}
			if malformed.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", malformed.Offset, tt.wantOffset)
			}
		})
	}
}

func TestParseWith_CustomDelimiters(t *testing.T) {
	doc, err := ParseWith("ab<<cd>>ef", Delimiters{Open: "<<", Close: ">>"})
	if err != nil {
		t.Fatalf("ParseWith error: %v", err)
	}
	if doc.Clean != "abcdef" {
		t.Errorf("clean = %q, want %q", doc.Clean, "abcdef")
	}
	want := Span{Start: 2, Length: 2, Ordinal: 0}
	if len(doc.Spans) != 1 || doc.Spans[0] != want {
		t.Errorf("spans = %+v, want [%+v]", doc.Spans, want)
	}

	// Default markers are plain text under custom delimiters.
	doc, err = ParseWith("a[|b<<c>>", Delimiters{Open: "<<", Close: ">>"})
	if err != nil {
		t.Fatalf("ParseWith error: %v", err)
	}
	if doc.Clean != "a[|bc" {
		t.Errorf("clean = %q, want %q", doc.Clean, "a[|bc")
	}
}

func TestParseWith_InvalidDelimiters(t *testing.T) {
	tests := []struct {
		name   string
		delims Delimiters
	}{
		{name: "empty open", delims: Delimiters{Open: "", Close: "|]"}},
		{name: "empty close", delims: Delimiters{Open: "[|", Close: ""}},
		{name: "identical pair", delims: Delimiters{Open: "@@", Close: "@@"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseWith("abc", tt.delims); err == nil {
				t.Errorf("ParseWith accepted delimiters %+v", tt.delims)
			}
		})
	}
}

func TestSpan_ToSource(t *testing.T) {
	s := Span{Start: 3, Length: 4, Ordinal: 1}
	got := s.ToSource(source.FileID(7))
	want := source.Span{File: 7, Start: 3, End: 7}
	if got != want {
		t.Errorf("ToSource() = %+v, want %+v", got, want)
	}
}

func TestDocument_SourceSpans(t *testing.T) {
	doc, err := Parse("[|a|][|b|]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	spans := doc.SourceSpans(0)
	want := []source.Span{
		{File: 0, Start: 0, End: 1},
		{File: 0, Start: 1, End: 2},
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d", len(spans), len(want))
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span[%d] = %+v, want %+v", i, spans[i], want[i])
		}
	}
}
