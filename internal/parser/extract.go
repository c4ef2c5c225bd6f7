// internal/parser/extract.go
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is what the crawler needs from one HTML page.
type Document struct {
	Title string
	Text  string   // tag-stripped text, text nodes separated by spaces
	Hrefs []string // raw <a href> values in document order
}

// HTML parses pages with goquery for text and the x/net/html tokenizer for
// anchors. The zero value is ready to use.
type HTML struct{}

// Parse builds a Document from raw page bytes.
func (HTML) Parse(content []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}
	return Document{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Text:  text(doc),
		Hrefs: Hrefs(content),
	}, nil
}

func text(doc *goquery.Document) string {
	// Remove nodes that carry no readable text
	doc.Find("script, style, noscript, template").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	// goquery's Text() glues adjacent nodes together ("<p>a</p><p>b</p>" -> "ab"),
	// so walk the text nodes ourselves.
	sb := strings.Builder{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return sb.String()
}
