// Package observability provides formatted summaries for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatch outputs the signal breakdown of a single resume and job pair.
func (p *Printer) PrintMatch(m types.MatchScore, explanation string) {
	f := m.Features
	var sb strings.Builder

	fmt.Fprintf(&sb, "Ensemble score:  %.3f\n\n", m.EnsembleScore)
	for _, name := range types.AllSignals {
		v, ok := f.Value(name)
		if !ok {
			fmt.Fprintf(&sb, "  %-24s omitted\n", name)
			continue
		}
		fmt.Fprintf(&sb, "  %-24s %.3f\n", name, v)
	}
	fmt.Fprintf(&sb, "  lexical source: %s\n", f.LexicalSource)

	writeList(&sb, "Matched", f.MatchedSkills)
	writeList(&sb, "Missing", f.MissingSkills)
	for _, note := range f.Notes {
		fmt.Fprintf(&sb, "\nNote: %s", note)
	}
	if explanation != "" {
		fmt.Fprintf(&sb, "\n\n%s", explanation)
	}

	p.printBox("MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendation outputs the top results of a ranking and how much of the pool was scored.
func (p *Printer) PrintRecommendation(title string, rec *types.Recommendation) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Pool: %d  Considered: %d  Scored: %d  Failed: %d\n", rec.PoolSize, rec.Considered, rec.Scored, rec.Failed)
	if !rec.Complete {
		fmt.Fprintf(&sb, "Partial: %s\n", rec.Reason)
	}

	count := min(len(rec.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := rec.Results[i]
		name := r.Name
		if r.Company != "" {
			name += " @ " + r.Company
		}
		fmt.Fprintf(&sb, "\n#%d  %s (%s)\n", r.Rank, name, r.ID)
		fmt.Fprintf(&sb, "    Score: %.3f (ensemble %.3f)\n", r.Score, r.Match.EnsembleScore)
		if r.Notes != "" {
			fmt.Fprintf(&sb, "    %s\n", r.Notes)
		}
	}
	if len(rec.Results) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more", len(rec.Results)-maxItemsToShow)
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	shown := items
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	fmt.Fprintf(sb, "\n%s: %s", label, strings.Join(shown, ", "))
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, " (+%d)", len(items)-maxItemsToShow)
	}
}
