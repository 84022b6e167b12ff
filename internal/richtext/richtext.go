// Package richtext handles the HTML produced by the admin rich-text editor.
package richtext

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	stripSelectors = "script, style, iframe, object, embed, form, noscript"
	blockSelectors = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, blockquote, pre"
)

// PlainText renders editor HTML as whitespace-collapsed text.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}

	doc.Find(stripSelectors).Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most n runes of plain text, cut on a word boundary.
func Excerpt(html string, n int) string {
	text := PlainText(html)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
