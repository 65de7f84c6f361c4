package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"DocLens/internal/domain"
	"DocLens/internal/ports"
)

const (
	sniffBytes      = 1024
	maxPreviewRunes = 300
)

var htmlMarkers = []string{"<!doctype html", "<html", "<head", "<title", "<body"}

// HTMLPreview pulls a title and description out of HTML documents. Plain
// text and other formats yield an empty preview.
type HTMLPreview struct{}

var _ ports.PreviewExtractor = (*HTMLPreview)(nil)

// NewHTMLPreview builds the extractor.
func NewHTMLPreview() *HTMLPreview {
	return &HTMLPreview{}
}

// Extract parses document without modifying it.
func (p *HTMLPreview) Extract(document string) (domain.Preview, error) {
	if !looksLikeHTML(document) {
		return domain.Preview{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return domain.Preview{}, fmt.Errorf("parse document: %w", err)
	}

	return domain.Preview{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	if title, ok := metaContent(doc, `meta[property="og:title"]`); ok {
		return title
	}
	if title := clean(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return clean(doc.Find("h1").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	if desc, ok := metaContent(doc, `meta[name="description"]`); ok {
		return desc
	}
	desc, _ := metaContent(doc, `meta[property="og:description"]`)
	return desc
}

func metaContent(doc *goquery.Document, selector string) (string, bool) {
	content, exists := doc.Find(selector).First().Attr("content")
	if !exists {
		return "", false
	}
	content = clean(content)
	return content, content != ""
}

func clean(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > maxPreviewRunes {
		return string(runes[:maxPreviewRunes])
	}
	return text
}

func looksLikeHTML(document string) bool {
	head := document
	if len(head) > sniffBytes {
		head = head[:sniffBytes]
	}
	head = strings.ToLower(head)
	for _, marker := range htmlMarkers {
		if strings.Contains(head, marker) {
			return true
		}
	}
	return false
}
