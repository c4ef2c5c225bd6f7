// internal/scope/filter.go
package scope

import (
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Reason says which rule rejected a URL. ReasonNone means the URL is in scope.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmpty
	ReasonMalformed
	ReasonScheme
	ReasonHost
	ReasonTrap
	ReasonLowValue
	ReasonRedundant
	ReasonExtension
)

var reasonNames = [...]string{
	ReasonNone:      "none",
	ReasonEmpty:     "empty",
	ReasonMalformed: "malformed",
	ReasonScheme:    "scheme",
	ReasonHost:      "host",
	ReasonTrap:      "trap",
	ReasonLowValue:  "low_value",
	ReasonRedundant: "redundant",
	ReasonExtension: "extension",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// Filter decides crawl eligibility of candidate URLs. A Filter is read-only
// after construction and safe for concurrent use.
type Filter struct {
	domains    []string
	traps      []string
	lowValue   []string
	redundant  []string
	extensions map[string]struct{}
	logger     *zap.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithLogger sets the logger used for rejected-on-parse URLs.
func WithLogger(l *zap.Logger) Option {
	return func(f *Filter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithDomains adds allow-list entries on top of DefaultDomains.
func WithDomains(domains ...string) Option {
	return func(f *Filter) { f.domains = appendLower(f.domains, domains) }
}

// WithTraps adds trap substrings on top of DefaultTraps.
func WithTraps(traps ...string) Option {
	return func(f *Filter) { f.traps = appendLower(f.traps, traps) }
}

// WithLowValuePrefixes adds path prefixes on top of DefaultLowValuePrefixes.
func WithLowValuePrefixes(prefixes ...string) Option {
	return func(f *Filter) { f.lowValue = appendLower(f.lowValue, prefixes) }
}

// WithRedundant adds redundant-listing substrings on top of DefaultRedundant.
func WithRedundant(subs ...string) Option {
	return func(f *Filter) { f.redundant = appendLower(f.redundant, subs) }
}

// New returns a Filter loaded with the default UCI tables.
func New(opts ...Option) *Filter {
	f := &Filter{
		domains:    appendLower(nil, DefaultDomains),
		traps:      appendLower(nil, DefaultTraps),
		lowValue:   appendLower(nil, DefaultLowValuePrefixes),
		redundant:  appendLower(nil, DefaultRedundant),
		extensions: make(map[string]struct{}, len(DefaultExtensions)),
		logger:     zap.NewNop(),
	}
	for _, ext := range DefaultExtensions {
		f.extensions["."+ext] = struct{}{}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsInScope reports whether raw should be crawled. It never panics.
func (f *Filter) IsInScope(raw string) bool {
	return f.Classify(raw) == ReasonNone
}

// Classify runs the rule pipeline and returns the first failing rule.
// Rules short-circuit in this order: empty/malformed, scheme, host, trap,
// low-value prefix, redundant listing, extension.
func (f *Filter) Classify(raw string) (reason Reason) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("scope check panicked", zap.String("url", raw), zap.Any("panic", r))
			reason = ReasonMalformed
		}
	}()

	if raw == "" {
		return ReasonEmpty
	}

	u, err := url.Parse(raw)
	if err != nil {
		f.logger.Debug("unparsable url", zap.String("url", raw), zap.Error(err))
		return ReasonMalformed
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ReasonScheme
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || !containsAny(host, f.domains) {
		return ReasonHost
	}

	lower := strings.ToLower(raw)
	if containsAny(lower, f.traps) {
		return ReasonTrap
	}

	p := strings.ToLower(u.Path)
	for _, prefix := range f.lowValue {
		if strings.HasPrefix(p, prefix) {
			return ReasonLowValue
		}
	}

	if containsAny(lower, f.redundant) {
		return ReasonRedundant
	}

	// ";params" on the last segment are not part of the file name
	last := p[strings.LastIndexByte(p, '/')+1:]
	last, _, _ = strings.Cut(last, ";")
	if _, bad := f.extensions[path.Ext(last)]; bad {
		return ReasonExtension
	}
	return ReasonNone
}

// --- helpers -------------------------------------------------------------

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func appendLower(dst, src []string) []string {
	for _, s := range src {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}
