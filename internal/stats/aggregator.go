// internal/stats/aggregator.go
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"ics-crawler/internal/scope"
	"ics-crawler/internal/tokenizer"
)

// DefaultTopWords is how many words Report returns.
const DefaultTopWords = 100

// ErrBudgetExhausted is returned by RecordPageCapped once the page budget is full.
var ErrBudgetExhausted = errors.New("page budget exhausted")

// Page is a (url, word count) pair.
type Page struct {
	URL   string `json:"url" bson:"url"`
	Words int    `json:"words" bson:"words"`
}

// WordCount is one entry of the word-frequency table.
type WordCount struct {
	Word  string `json:"word" bson:"word"`
	Count int    `json:"count" bson:"count"`
}

// SubdomainCount is the number of unique pages recorded for one host.
type SubdomainCount struct {
	Host  string `json:"host" bson:"host"`
	Pages int    `json:"pages" bson:"pages"`
}

// Report is a point-in-time snapshot of an Aggregator.
type Report struct {
	UniquePages int              `json:"unique_pages" bson:"unique_pages"`
	Longest     Page             `json:"longest" bson:"longest"`
	TopWords    []WordCount      `json:"top_words" bson:"top_words"`
	Subdomains  []SubdomainCount `json:"subdomains" bson:"subdomains"`
}

// Aggregator accumulates corpus statistics for one crawl session. All four
// tables are guarded by one lock so a Report never sees a page half-recorded.
type Aggregator struct {
	mu         sync.RWMutex
	unique     map[string]struct{}
	subdomains map[string]int
	words      map[string]int
	longest    Page
	topN       int
}

// New returns an empty Aggregator whose Report keeps topN words.
// topN <= 0 means DefaultTopWords.
func New(topN int) *Aggregator {
	if topN <= 0 {
		topN = DefaultTopWords
	}
	return &Aggregator{
		unique:     make(map[string]struct{}),
		subdomains: make(map[string]int),
		words:      make(map[string]int),
		topN:       topN,
	}
}

// RecordPage adds one fetched, in-scope page. The URL is keyed by its
// fragment-stripped form; recording the same page twice is a no-op and
// returns false. Page length is the number of non-stopword tokens.
func (a *Aggregator) RecordPage(rawURL string, tokens []string) (bool, error) {
	return a.RecordPageCapped(rawURL, tokens, 0)
}

// RecordPageCapped is RecordPage with a unique-page budget checked under the
// same lock. capacity <= 0 means unlimited.
func (a *Aggregator) RecordPageCapped(rawURL string, tokens []string, capacity int) (bool, error) {
	canon := scope.Canonical(rawURL)
	host, err := scope.Host(canon)
	if err != nil {
		return false, fmt.Errorf("record page: %w", err)
	}

	// count outside the lock, apply inside
	counts := make(map[string]int, len(tokens))
	words := 0
	for _, t := range tokens {
		t = strings.ToLower(t)
		if t == "" || tokenizer.IsStopword(t) {
			continue
		}
		counts[t]++
		words++
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, seen := a.unique[canon]; seen {
		return false, nil
	}
	if capacity > 0 && len(a.unique) >= capacity {
		return false, ErrBudgetExhausted
	}
	a.unique[canon] = struct{}{}
	a.subdomains[host]++
	for w, n := range counts {
		a.words[w] += n
	}
	if words > a.longest.Words {
		a.longest = Page{URL: canon, Words: words}
	}
	return true, nil
}

// Seen reports whether the fragment-stripped rawURL was recorded.
func (a *Aggregator) Seen(rawURL string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.unique[scope.Canonical(rawURL)]
	return ok
}

// UniquePages returns the number of distinct pages recorded.
func (a *Aggregator) UniquePages() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.unique)
}

// Report builds a snapshot without mutating state. Top words are ordered by
// descending count, ties by ascending word; subdomains by ascending host.
func (a *Aggregator) Report() Report {
	a.mu.RLock()
	r := Report{
		UniquePages: len(a.unique),
		Longest:     a.longest,
		TopWords:    make([]WordCount, 0, len(a.words)),
		Subdomains:  make([]SubdomainCount, 0, len(a.subdomains)),
	}
	for w, n := range a.words {
		r.TopWords = append(r.TopWords, WordCount{Word: w, Count: n})
	}
	for h, n := range a.subdomains {
		r.Subdomains = append(r.Subdomains, SubdomainCount{Host: h, Pages: n})
	}
	topN := a.topN
	a.mu.RUnlock()

	sort.Slice(r.TopWords, func(i, j int) bool {
		if r.TopWords[i].Count != r.TopWords[j].Count {
			return r.TopWords[i].Count > r.TopWords[j].Count
		}
		return r.TopWords[i].Word < r.TopWords[j].Word
	})
	if len(r.TopWords) > topN {
		r.TopWords = r.TopWords[:topN]
	}
	sort.Slice(r.Subdomains, func(i, j int) bool {
		return r.Subdomains[i].Host < r.Subdomains[j].Host
	})
	return r
}
