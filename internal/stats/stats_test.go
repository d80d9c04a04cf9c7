package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordpick/internal/model"
)

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{2, 2, 2}))
	assert.Equal(t, " @", Sparkline([]float64{0, 1}))
}

func TestPoolDepth(t *testing.T) {
	assert.Equal(t, 0.0, PoolDepth(model.Pick{Position: 0, PoolSize: 1}))
	assert.Equal(t, 0.0, PoolDepth(model.Pick{Position: 0, PoolSize: 1000}))
	assert.Equal(t, 1.0, PoolDepth(model.Pick{Position: 999, PoolSize: 1000}))
	assert.InDelta(t, 0.5, PoolDepth(model.Pick{Position: 50, PoolSize: 101}), 1e-9)
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, Report{}, 80))
	assert.Equal(t, "No picks found.\n", buf.String())
}

func TestRenderReport(t *testing.T) {
	picks := []model.Pick{
		{PickedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Length: 5, Word: "crane", Position: 0, PoolSize: 1000},
		{PickedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), Length: 5, Word: "house", Position: 999, PoolSize: 1000},
		{PickedAt: time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC), Length: 4, Word: "word", Position: 350, PoolSize: 700},
	}
	report := Report{
		Picks:    picks,
		Lengths:  AggregateByLength(picks),
		TopWords: countWords(picks),
	}
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, report, 60))
	out := buf.String()
	for _, want := range []string{"Summary", "Picks: 3", "Distinct words: 3", "Per Length", "Top Words", "Pool Depth", "crane"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderPositionHistogramBuckets(t *testing.T) {
	picks := []model.Pick{
		{Position: 0, PoolSize: 100},
		{Position: 5, PoolSize: 100},
		{Position: 99, PoolSize: 100},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderPositionHistogram(&buf, picks, 40))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+histogramBuckets)
	assert.True(t, strings.HasSuffix(lines[1], " 2"), lines[1])
	assert.True(t, strings.HasSuffix(lines[histogramBuckets], " 1"), lines[histogramBuckets])
	assert.True(t, strings.HasSuffix(lines[5], " 0"), lines[5])
}
