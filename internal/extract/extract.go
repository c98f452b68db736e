// Package extract turns uploaded files into analyzable text. File kind is
// chosen from the filename extension only; content is never sniffed.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDecode reports input whose bytes could not be turned into text.
var ErrDecode = errors.New("decode error")

// Kind is the input family selected from a filename extension.
type Kind string

const (
	KindText        Kind = "text"
	KindHTML        Kind = "html"
	KindPDF         Kind = "pdf"
	KindDOCX        Kind = "docx"
	KindUnsupported Kind = "unsupported"
)

const docxNotice = "DOCX parsing not yet implemented. Please use text input."

// Document is the outcome of decoding one input. Either Text is set, or
// Notice explains why there is nothing to analyze.
type Document struct {
	Filename string `json:"filename"`
	Kind     Kind   `json:"kind"`
	Text     string `json:"-"`
	Notice   string `json:"notice,omitempty"`
}

// Analyzable reports whether the document carries text for the classifier.
func (d Document) Analyzable() bool { return d.Notice == "" && d.Text != "" }

// KindOf maps a filename to its input kind. A name without an extension is
// treated as plain text.
func KindOf(filename string) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case "", ".txt", ".text", ".md", ".markdown", ".csv", ".log":
		return KindText
	case ".html", ".htm":
		return KindHTML
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindUnsupported
	}
}

// Decode converts content to a Document. Unsupported kinds are returned with
// a Notice and a nil error; only undecodable bytes produce ErrDecode.
func Decode(filename string, content []byte) (Document, error) {
	doc := Document{Filename: filepath.Base(filename), Kind: KindOf(filename)}

	switch doc.Kind {
	case KindText:
		text, err := decodeText(content)
		if err != nil {
			return doc, err
		}
		doc.Text = text
	case KindHTML:
		text, err := decodeText(content)
		if err != nil {
			return doc, err
		}
		if doc.Text, err = htmlToText(text); err != nil {
			return doc, fmt.Errorf("%w: html: %v", ErrDecode, err)
		}
	case KindPDF:
		text, pages, err := pdfText(content)
		if err != nil {
			return doc, fmt.Errorf("%w: pdf: %v", ErrDecode, err)
		}
		if strings.TrimSpace(text) == "" {
			doc.Notice = fmt.Sprintf("PDF document with %d pages has no extractable text. Please use text input.", pages)
			break
		}
		doc.Text = text
	case KindDOCX:
		doc.Notice = docxNotice
	default:
		doc.Notice = fmt.Sprintf("File type %q is not supported. Upload TXT, HTML, PDF or DOCX, or paste text.", strings.ToLower(filepath.Ext(filename)))
	}
	if doc.Notice == "" && doc.Text == "" {
		doc.Notice = "The document is empty. Please enter some text to analyze."
	}
	return doc, nil
}

// ReadFile reads path from disk and decodes it.
func ReadFile(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{Filename: filepath.Base(path), Kind: KindOf(path)}, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(path, b)
}
