package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	htmlDropped = "head, script, style, noscript, template, svg"
	htmlBlocks  = "address, article, aside, blockquote, br, dd, div, dl, dt, fieldset, figcaption, " +
		"figure, footer, form, h1, h2, h3, h4, h5, h6, header, hr, li, main, nav, ol, p, pre, " +
		"section, table, td, th, tr, ul"
)

// htmlToText returns the visible text of an HTML page. Inline markup is
// dropped without adding separators, so a phrase split across <b> or <a>
// tags reads as one phrase; block elements end a line.
func htmlToText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	doc.Find(htmlDropped).Remove()
	doc.Find(htmlBlocks).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			lines = append(lines, strings.Join(f, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}
