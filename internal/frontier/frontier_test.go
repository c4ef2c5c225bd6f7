package frontier

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrder(t *testing.T) {
	t.Parallel()

	q := NewQueue()
	for _, u := range []string{"a", "b", "c"} {
		q.Enqueue(u)
	}

	u, ok := q.PopFront()
	assert.True(t, ok)
	assert.Equal(t, "a", u)

	u, ok = q.PopBack()
	assert.True(t, ok)
	assert.Equal(t, "c", u)

	assert.Equal(t, 1, q.Size())
	assert.Equal(t, 3, q.TotalQueued())

	_, _ = q.PopFront()
	_, ok = q.PopFront()
	assert.False(t, ok)
	_, ok = q.PopBack()
	assert.False(t, ok)
}

func TestVisitedCanonical(t *testing.T) {
	t.Parallel()

	v := NewVisited()
	assert.True(t, v.AddIfAbsent("https://ics.uci.edu/page"))
	assert.False(t, v.AddIfAbsent("https://ics.uci.edu/page#sec"))
	assert.False(t, v.AddIfAbsent("https://ics.uci.edu/page#other"))
	assert.Equal(t, 1, v.Size())

	v.Add("https://ics.uci.edu/page/")
	assert.Equal(t, 2, v.Size())
	assert.False(t, v.AddIfAbsent("https://ics.uci.edu/page/"))
}

func TestVisitedAddIfAbsentConcurrent(t *testing.T) {
	t.Parallel()

	v := NewVisited()
	var wins atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if v.AddIfAbsent(fmt.Sprintf("https://ics.uci.edu/%d", i)) {
					wins.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(100), wins.Load())
	assert.Equal(t, 100, v.Size())
}
