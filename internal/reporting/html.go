package reporting

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
)

const htmlStyle = `<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4;max-width:960px}` +
	`h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}` +
	`table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px}` +
	`.finding{padding:12px 15px;margin:10px 0;border-radius:5px}` +
	`.warning{background:#fff3cd;border-left:5px solid #ffc107}` +
	`.info{background:#d1ecf1;border-left:5px solid #17a2b8}` +
	`.ok{background:#d4edda;border-left:5px solid #28a745}</style>`

func cssClass(s ir.Severity) string {
	if s == ir.SeverityElevated {
		return "warning"
	}
	return "info"
}

// RenderHTML writes a standalone HTML page for the report.
func RenderHTML(w io.Writer, rep *Report) error {
	bw := bufio.NewWriter(w)
	esc := html.EscapeString

	fmt.Fprintf(bw, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", esc(Title))
	fmt.Fprint(bw, htmlStyle)
	fmt.Fprint(bw, "</head><body>")

	fmt.Fprintf(bw, "<h1>%s</h1>", esc(Title))
	fmt.Fprintf(bw, "<p class='dim'>Analysis <span class='mono'>%s</span>", esc(rep.ID))
	if rep.Source != "" {
		fmt.Fprintf(bw, " &nbsp; Source: %s", esc(rep.Source))
	}
	if !rep.AnalyzedAt.IsZero() {
		fmt.Fprintf(bw, " &nbsp; Analysis Date: %s", rep.AnalyzedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprint(bw, "</p>")
	fmt.Fprintf(bw, "<p><b>Document Length:</b> %d characters</p>", rep.Length)

	switch {
	case rep.Notice != "":
		fmt.Fprintf(bw, "<div class='finding info'>%s</div>", esc(rep.Notice))
	case rep.Summary.Total == 0:
		fmt.Fprintf(bw, "<div class='finding ok'><b>%s</b><br>%s</div>", esc(noConcerns), esc(manualReview))
	default:
		fmt.Fprint(bw, "<h2>Summary</h2><table><tr><th>Total Issues Found</th><th>Warnings</th><th>Informational</th></tr>")
		fmt.Fprintf(bw, "<tr><td>%d</td><td>%d</td><td>%d</td></tr></table>",
			rep.Summary.Total, rep.Summary.Elevated, rep.Summary.Informational)

		fmt.Fprint(bw, "<h2>Detailed Findings</h2>")
		for i, f := range rep.Findings {
			fmt.Fprintf(bw, "<div class='finding %s'><b>%s %d. %s</b> <span class='dim'>[%s]</span>",
				cssClass(f.Severity), f.Severity.Marker(), i+1, esc(f.Rule), f.Severity.Label())
			fmt.Fprintf(bw, "<p><b>MFIPPA Reference:</b> %s<br><b>Description:</b> %s</p>", esc(f.Citation), esc(f.Description))
			if len(f.Matches) > 0 {
				fmt.Fprint(bw, "<b>Detected in document:</b><ul>")
				for _, m := range f.Matches {
					fmt.Fprintf(bw, "<li><code>%s</code></li>", esc(m))
				}
				fmt.Fprint(bw, "</ul>")
			}
			fmt.Fprint(bw, "</div>")
		}

		fmt.Fprint(bw, "<h2>Recommendations</h2>")
		for _, r := range rep.Recommendations {
			fmt.Fprintf(bw, "<div class='finding %s'><b>%s:</b><ul>", cssClass(r.Severity), esc(r.Title))
			for _, it := range r.Items {
				fmt.Fprintf(bw, "<li>%s</li>", esc(it))
			}
			fmt.Fprint(bw, "</ul></div>")
		}
	}

	fmt.Fprintf(bw, "<p class='dim'><b>Disclaimer:</b> %s</p>", esc(rep.Disclaimer))
	fmt.Fprint(bw, "</body></html>")
	return bw.Flush()
}

func WriteHTML(id, outDir string, rep *Report) (string, error) {
	return writeFile(outDir, id+".html", func(w io.Writer) error { return RenderHTML(w, rep) })
}
