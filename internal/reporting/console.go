package reporting

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
)

type consoleStyles struct {
	title, heading, dim, ok, warning, info lipgloss.Style
}

// Styles bind to the destination writer so piped output stays free of
// escape sequences.
func newConsoleStyles(w io.Writer) consoleStyles {
	r := lipgloss.NewRenderer(w)
	return consoleStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f77b4")),
		heading: r.NewStyle().Bold(true).Underline(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#888888")),
		ok:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#28a745")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffc107")),
		info:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#17a2b8")),
	}
}

func (s consoleStyles) severity(sev ir.Severity) lipgloss.Style {
	if sev == ir.SeverityElevated {
		return s.warning
	}
	return s.info
}

// WriteConsole prints the report for a terminal.
func WriteConsole(w io.Writer, rep *Report) error {
	bw := bufio.NewWriter(w)
	st := newConsoleStyles(w)

	fmt.Fprintln(bw, st.title.Render(Title))
	meta := "Analysis " + rep.ID
	if rep.Source != "" {
		meta += "  Source: " + rep.Source
	}
	if !rep.AnalyzedAt.IsZero() {
		meta += "  Analysis Date: " + rep.AnalyzedAt.Format("2006-01-02 15:04:05")
	}
	fmt.Fprintln(bw, st.dim.Render(meta))
	fmt.Fprintf(bw, "Document Length: %d characters\n\n", rep.Length)

	switch {
	case rep.Notice != "":
		fmt.Fprintln(bw, st.info.Render(ir.SeverityInformational.Marker()+" "+rep.Notice))
	case rep.Summary.Total == 0:
		fmt.Fprintln(bw, st.ok.Render("✓ "+noConcerns))
		fmt.Fprintln(bw, manualReview)
	default:
		fmt.Fprintln(bw, st.heading.Render("Summary"))
		fmt.Fprintf(bw, "  Total Issues Found: %d   Warnings: %d   Informational: %d\n\n",
			rep.Summary.Total, rep.Summary.Elevated, rep.Summary.Informational)

		fmt.Fprintln(bw, st.heading.Render("Detailed Findings"))
		for i, f := range rep.Findings {
			head := fmt.Sprintf("%s %d. %s [%s]", f.Severity.Marker(), i+1, f.Rule, f.Severity.Label())
			fmt.Fprintln(bw, st.severity(f.Severity).Render(head))
			fmt.Fprintf(bw, "   MFIPPA Reference: %s\n", f.Citation)
			fmt.Fprintf(bw, "   Description: %s\n", f.Description)
			if len(f.Matches) > 0 {
				fmt.Fprintln(bw, "   Detected in document:")
				for _, m := range f.Matches {
					fmt.Fprintf(bw, "     - %q\n", m)
				}
			}
			fmt.Fprintln(bw)
		}

		fmt.Fprintln(bw, st.heading.Render("Recommendations"))
		for _, r := range rep.Recommendations {
			fmt.Fprintln(bw, st.severity(r.Severity).Render(r.Title+":"))
			for _, it := range r.Items {
				fmt.Fprintf(bw, "  - %s\n", it)
			}
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, st.dim.Render("Disclaimer: "+rep.Disclaimer))
	return bw.Flush()
}
