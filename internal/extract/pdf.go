package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfText extracts plain text page by page. Pages that fail to decode are
// skipped; only an unreadable document is an error.
func pdfText(content []byte) (text string, pages int, err error) {
	// the pdf reader panics on some malformed xref tables
	defer func() {
		if rec := recover(); rec != nil {
			text, pages, err = "", 0, fmt.Errorf("malformed document: %v", rec)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, err
	}
	pages = r.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		t, perr := p.GetPlainText(nil)
		if perr != nil || t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(t)
	}
	return sb.String(), pages, nil
}
