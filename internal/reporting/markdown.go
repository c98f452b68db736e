package reporting

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes the report as GitHub-flavoured Markdown.
func RenderMarkdown(w io.Writer, rep *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", Title)
	fmt.Fprintf(bw, "**Analysis:** `%s`  \n", rep.ID)
	if rep.Source != "" {
		fmt.Fprintf(bw, "**Source:** %s  \n", rep.Source)
	}
	if !rep.AnalyzedAt.IsZero() {
		fmt.Fprintf(bw, "**Analysis Date:** %s  \n", rep.AnalyzedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(bw, "**Document Length:** %d characters\n\n", rep.Length)

	switch {
	case rep.Notice != "":
		fmt.Fprintf(bw, "> %s\n\n", rep.Notice)
	case rep.Summary.Total == 0:
		fmt.Fprintf(bw, "**%s**\n\n%s\n\n", noConcerns, manualReview)
	default:
		fmt.Fprint(bw, "## Summary\n\n| Total Issues Found | Warnings | Informational |\n|---|---|---|\n")
		fmt.Fprintf(bw, "| %d | %d | %d |\n\n", rep.Summary.Total, rep.Summary.Elevated, rep.Summary.Informational)

		fmt.Fprint(bw, "## Detailed Findings\n\n")
		for i, f := range rep.Findings {
			fmt.Fprintf(bw, "### %s %d. %s [%s]\n\n", f.Severity.Marker(), i+1, f.Rule, f.Severity.Label())
			fmt.Fprintf(bw, "**MFIPPA Reference:** %s  \n**Description:** %s\n\n", f.Citation, f.Description)
			if len(f.Matches) > 0 {
				fmt.Fprint(bw, "**Detected in document:**\n\n")
				for _, m := range f.Matches {
					fmt.Fprintf(bw, "- `%s`\n", strings.ReplaceAll(m, "`", "'"))
				}
				fmt.Fprint(bw, "\n")
			}
		}

		fmt.Fprint(bw, "## Recommendations\n\n")
		for _, r := range rep.Recommendations {
			fmt.Fprintf(bw, "**%s:**\n\n", r.Title)
			for _, it := range r.Items {
				fmt.Fprintf(bw, "- %s\n", it)
			}
			fmt.Fprint(bw, "\n")
		}
	}

	fmt.Fprintf(bw, "---\n\n*Disclaimer: %s*\n", rep.Disclaimer)
	return bw.Flush()
}

func WriteMarkdown(id, outDir string, rep *Report) (string, error) {
	return writeFile(outDir, id+".md", func(w io.Writer) error { return RenderMarkdown(w, rep) })
}
