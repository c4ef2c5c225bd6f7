package scope

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNoHost is returned by Host for URLs without a hostname.
var ErrNoHost = errors.New("url has no host")

// Canonical strips the fragment from raw. No other normalization is applied:
// "/a" and "/a/" stay distinct pages.
func Canonical(raw string) string {
	before, _, _ := strings.Cut(raw, "#")
	return before
}

// Host returns the lowercased hostname of raw.
func Host(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}
	h := strings.ToLower(u.Hostname())
	if h == "" {
		return "", ErrNoHost
	}
	return h, nil
}
