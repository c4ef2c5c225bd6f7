package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ics-crawler/internal/stats"
)

func TestNoopStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := New(ctx, "", "", nil)
	require.NoError(t, err)

	assert.False(t, s.Enabled())
	_, err = uuid.Parse(s.Session())
	assert.NoError(t, err)

	assert.NoError(t, s.SavePage(ctx, PageRecord{URL: "https://ics.uci.edu/"}))
	assert.NoError(t, s.SaveReport(ctx, stats.New(0).Report()))
	assert.NoError(t, s.Close(ctx))
}

func TestNewBadURI(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "not-a-mongo-uri", "", nil)
	assert.Error(t, err)
}
