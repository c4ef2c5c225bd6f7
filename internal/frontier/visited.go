package frontier

import (
	"hash/fnv"
	"sync"

	"ics-crawler/internal/scope"
)

// Visited is the frontier's crawl history, keyed by the 64-bit fnv hash of
// each URL's fragment-stripped form.
type Visited struct {
	set map[uint64]struct{}
	mu  sync.Mutex
}

func NewVisited() *Visited {
	return &Visited{
		set: make(map[uint64]struct{}),
	}
}

func hash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(scope.Canonical(s)))
	return h.Sum64()
}

func (v *Visited) Add(u string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.set[hash(u)] = struct{}{}
}

// AddIfAbsent marks u as seen and reports whether it was new.
func (v *Visited) AddIfAbsent(u string) bool {
	k := hash(u)
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.set[k]; ok {
		return false
	}
	v.set[k] = struct{}{}
	return true
}

func (v *Visited) Size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.set)
}
