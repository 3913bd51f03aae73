package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"lintkit/internal/markup"
	"lintkit/internal/source"
	"lintkit/internal/textdiff"
)

var markupCmd = &cobra.Command{
	Use:   "markup [flags] <file>",
	Short: "Resolve span markers in an annotated snippet",
	Long:  "Parse an annotated snippet, strip its markers, and print the clean text or the resolved span table.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkup,
}

func init() {
	markupCmd.Flags().Bool("clean", false, "print the clean text instead of the span table")
}

func runMarkup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanOnly, err := cmd.Flags().GetBool("clean")
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("markup: %w", err)
	}
	raw := string(fileSet.Get(id).Content)

	doc, err := markup.ParseWith(raw, cfg.Delimiters())
	if err != nil {
		return fmt.Errorf("markup: %s: %w", args[0], err)
	}

	if cleanOnly {
		return printf("%s", doc.Clean)
	}

	if len(doc.Spans) == 0 {
		return printf("no markers found in %s\n", args[0])
	}

	// Resolve line/column against the clean text: that is the text the
	// analysis engine would see.
	cleanSet := source.NewFileSet()
	cleanID := cleanSet.AddVirtual(args[0], []byte(doc.Clean))

	type row struct {
		ordinal  string
		span     string
		location string
		snippet  string
	}
	rows := make([]row, 0, len(doc.Spans))
	for _, s := range doc.Spans {
		start, _ := cleanSet.Resolve(s.ToSource(cleanID))
		rows = append(rows, row{
			ordinal:  fmt.Sprintf("%d", s.Ordinal),
			span:     fmt.Sprintf("%d-%d", s.Start, s.End()),
			location: fmt.Sprintf("%d:%d", start.Line, start.Col),
			snippet:  textdiff.MakeVisible(doc.Clean[s.Start:s.End()]),
		})
	}

	ordinalW := runewidth.StringWidth("#")
	spanW := runewidth.StringWidth("SPAN")
	locationW := runewidth.StringWidth("LINE:COL")
	for _, r := range rows {
		ordinalW = max(ordinalW, runewidth.StringWidth(r.ordinal))
		spanW = max(spanW, runewidth.StringWidth(r.span))
		locationW = max(locationW, runewidth.StringWidth(r.location))
	}

	var b strings.Builder
	appendRow := func(ordinal, span, location, snippet string) {
		b.WriteString(runewidth.FillRight(ordinal, ordinalW))
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(span, spanW))
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(location, locationW))
		b.WriteString("  ")
		b.WriteString(snippet)
		b.WriteByte('\n')
	}
	appendRow("#", "SPAN", "LINE:COL", "TEXT")
	for _, r := range rows {
		appendRow(r.ordinal, r.span, r.location, r.snippet)
	}
	return printf("%s", b.String())
}
