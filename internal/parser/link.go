// internal/parser/link.go
package parser

import (
	"net/url"
	"strings"
)

// Resolver resolves many hrefs against one parsed base.
type Resolver struct {
	base *url.URL
}

// NewResolver parses base once for a page's worth of links.
func NewResolver(base string) (*Resolver, error) {
	bu, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return &Resolver{base: bu}, nil
}

// Resolve converts a raw <a href="…"> into an absolute http(s) URL string
// with the fragment removed. It returns "" if the link should be ignored.
func (r *Resolver) Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return ""
	}
	return resolve(r.base, raw)
}

func resolve(bu *url.URL, raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// mailto:, javascript:, tel:, data: and friends never reach the filter.
	if ref.Scheme != "" {
		s := strings.ToLower(ref.Scheme)
		if s != "http" && s != "https" {
			return ""
		}
	}

	abs := bu.ResolveReference(ref)
	abs.Fragment = "" // drop #section
	abs.RawFragment = ""
	return abs.String()
}
