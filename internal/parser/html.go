package parser

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Hrefs returns every <a href> value in document order, unresolved.
// Empty values are kept so callers see exactly what the page contained.
func Hrefs(content []byte) []string {
	z := html.NewTokenizer(bytes.NewReader(content))
	links := make([]string, 0)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "a" || !hasAttr {
			continue
		}
		for {
			key, val, more := z.TagAttr()
			if string(key) == "href" {
				links = append(links, strings.TrimSpace(string(val)))
				break
			}
			if !more {
				break
			}
		}
	}
	return links
}
