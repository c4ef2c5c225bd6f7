package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// panicOnDebug is a log core whose debug sink blows up.
type panicOnDebug struct{ zapcore.Core }

func (panicOnDebug) Enabled(zapcore.Level) bool { return true }

func (c panicOnDebug) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level == zapcore.DebugLevel {
		panic("debug sink failure")
	}
	return c.Core.Check(ent, ce)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	f := New()
	tests := []struct {
		url  string
		want Reason
	}{
		{"", ReasonEmpty},
		{"http://[::1", ReasonMalformed},
		{"ftp://cs.uci.edu/x", ReasonScheme},
		{"mailto:someone@ics.uci.edu", ReasonScheme},
		{"/relative/path", ReasonScheme},
		{"https://evil.com/x", ReasonHost},
		{"https:///no-host", ReasonHost},
		{"https://ics.uci.edu/file.pdf", ReasonExtension},
		{"https://ics.uci.edu/IMAGE.JPG", ReasonExtension},
		{"https://ics.uci.edu/archive.tar.gz?dl=1", ReasonExtension},
		{"https://www.ics.uci.edu/paper.pdf;jsessionid=ABC", ReasonExtension},
		{"https://www.ics.uci.edu/slides.pptx;v=2", ReasonExtension},
		{"https://www.ics.uci.edu/a;b.pdf/page", ReasonNone},
		{"https://www.ics.uci.edu/page;jsessionid=ABC", ReasonNone},
		{"https://ics.uci.edu/page?a=1", ReasonNone},
		{"https://ics.uci.edu/page?file=x.pdf", ReasonNone},
		{"http://www.ICS.uci.edu/about/", ReasonNone},
		{"https://vision.ics.uci.edu/", ReasonNone},
		{"https://www.stat.uci.edu/faculty", ReasonNone},
		{"https://www.informatics.uci.edu/research/", ReasonNone},
		{"https://isg.ics.uci.edu/events/tag/talk/x", ReasonTrap},
		{"https://www.ics.uci.edu/events/", ReasonTrap},
		{"https://wics.ics.uci.edu/?ical=1", ReasonTrap},
		{"https://gitlab.ics.uci.edu/group/repo", ReasonTrap},
		{"https://www.ics.uci.edu/~dechter/books/ch1.html", ReasonLowValue},
		{"https://www.informatics.uci.edu/author/someone/", ReasonLowValue},
		{"https://www.ics.uci.edu/people/faculty", ReasonRedundant},
		{"https://www.ics.uci.edu/dir.pdf/", ReasonNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.Classify(tt.url), "reason %s", f.Classify(tt.url))
			assert.Equal(t, tt.want == ReasonNone, f.IsInScope(tt.url))
		})
	}
}

// Host matching is substring containment, so lookalike hosts pass.
func TestClassifyHostIsSubstringMatch(t *testing.T) {
	t.Parallel()

	f := New()
	assert.True(t, f.IsInScope("https://physics.uci.edu/"))
	assert.True(t, f.IsInScope("https://notics.uci.edu.example.com/"))
}

func TestClassifyRuleOrder(t *testing.T) {
	t.Parallel()

	f := New()
	// trap wins over extension
	assert.Equal(t, ReasonTrap, f.Classify("https://www.ics.uci.edu/events/poster.pdf"))
	// host wins over trap
	assert.Equal(t, ReasonHost, f.Classify("https://example.com/events/"))
	// low-value wins over redundant
	assert.Equal(t, ReasonLowValue, f.Classify("https://www.ics.uci.edu/author/people/"))
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	f := New()
	inputs := []string{"https://ics.uci.edu/a", "::::", "http://%zz", "https://evil.com"}
	for _, in := range inputs {
		first := f.Classify(in)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, f.Classify(in))
		}
	}
}

func TestClassifyFailsClosedOnPanic(t *testing.T) {
	t.Parallel()

	f := New(WithLogger(zap.New(panicOnDebug{zapcore.NewNopCore()})))
	require.NotPanics(t, func() {
		assert.Equal(t, ReasonMalformed, f.Classify("http://[::1"))
	})
	assert.False(t, f.IsInScope("http://[::1"))
	// well-formed URLs never reach the debug sink
	assert.Equal(t, ReasonNone, f.Classify("https://www.ics.uci.edu/"))
}

func TestOptionsExtendTables(t *testing.T) {
	t.Parallel()

	f := New(
		WithDomains("Example.org"),
		WithTraps("/wiki/special:"),
		WithLowValuePrefixes("/mirror/"),
		WithRedundant("/staff/"),
		WithLogger(nil),
	)
	assert.True(t, f.IsInScope("https://docs.example.org/guide"))
	assert.Equal(t, ReasonTrap, f.Classify("https://docs.example.org/wiki/Special:Random"))
	assert.Equal(t, ReasonLowValue, f.Classify("https://ics.uci.edu/mirror/x.html"))
	assert.Equal(t, ReasonRedundant, f.Classify("https://ics.uci.edu/a/staff/b"))
	// defaults are kept
	assert.Equal(t, ReasonExtension, f.Classify("https://ics.uci.edu/a.zip"))
}

func TestReasonString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "trap", ReasonTrap.String())
	assert.Equal(t, "none", ReasonNone.String())
	assert.Equal(t, "unknown", Reason(99).String())
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://ics.uci.edu/page", Canonical("https://ics.uci.edu/page#sec"))
	assert.Equal(t, "https://ics.uci.edu/page", Canonical("https://ics.uci.edu/page"))
	assert.Equal(t, "https://ics.uci.edu/page/", Canonical("https://ics.uci.edu/page/#"))
	assert.Equal(t, "https://ics.uci.edu/p?q=1", Canonical("https://ics.uci.edu/p?q=1#a#b"))
}

func TestHost(t *testing.T) {
	t.Parallel()

	h, err := Host("https://WWW.ICS.uci.edu:8443/x")
	require.NoError(t, err)
	assert.Equal(t, "www.ics.uci.edu", h)

	_, err = Host("mailto:x@y")
	assert.ErrorIs(t, err, ErrNoHost)

	_, err = Host("http://[::1")
	assert.Error(t, err)
}
