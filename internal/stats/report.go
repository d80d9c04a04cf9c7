// Package stats contains pick history calculations and reporting.
package stats

import (
	"context"
	"sort"

	"github.com/verte-zerg/wordpick/internal/model"
	"github.com/verte-zerg/wordpick/internal/store"
)

const defaultTopWords = 10

// Report contains precomputed data for history rendering.
type Report struct {
	Picks    []model.Pick
	Lengths  []model.LengthAggregate
	TopWords []model.WordCount
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (Report, error) {
	picks, err := st.ListPicks(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	counts := countWords(picks)
	if filter.Last <= 0 {
		// Without a window the store can aggregate over the whole table.
		counts, err = st.WordCounts(ctx, filter)
		if err != nil {
			return Report{}, err
		}
	}
	if len(counts) > defaultTopWords {
		counts = counts[:defaultTopWords]
	}
	return Report{
		Picks:    picks,
		Lengths:  AggregateByLength(picks),
		TopWords: counts,
	}, nil
}

// AggregateByLength groups picks by word length, shortest first.
func AggregateByLength(picks []model.Pick) []model.LengthAggregate {
	type acc struct {
		agg      model.LengthAggregate
		posSum   int
		distinct map[string]struct{}
	}
	byLen := map[int]*acc{}
	for _, p := range picks {
		a, ok := byLen[p.Length]
		if !ok {
			a = &acc{agg: model.LengthAggregate{Length: p.Length}, distinct: map[string]struct{}{}}
			byLen[p.Length] = a
		}
		a.agg.Picks++
		a.posSum += p.Position
		a.distinct[p.Word] = struct{}{}
		a.agg.MaxPoolSize = max(a.agg.MaxPoolSize, p.PoolSize)
		a.agg.MaxCandidate = max(a.agg.MaxCandidate, p.Candidates)
	}
	out := make([]model.LengthAggregate, 0, len(byLen))
	for _, a := range byLen {
		a.agg.Distinct = len(a.distinct)
		a.agg.AvgPosition = float64(a.posSum) / float64(a.agg.Picks)
		out = append(out, a.agg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Length < out[j].Length
	})
	return out
}

func countWords(picks []model.Pick) []model.WordCount {
	seen := map[string]int{}
	for _, p := range picks {
		seen[p.Word]++
	}
	out := make([]model.WordCount, 0, len(seen))
	for word, n := range seen {
		out = append(out, model.WordCount{Word: word, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Word < out[j].Word
		}
		return out[i].Count > out[j].Count
	})
	return out
}
