// Package model defines shared data structures.
package model

import "time"

// Config defines settings for a single pick.
type Config struct {
	Lang         string
	Length       int
	WordListPath string
	Tiers        Tiers
	Seed         int64
	Record       bool
	Reveal       bool
}

// Tiers holds the difficulty pool sizes. Long applies to words of five or
// more characters, Medium to four, Short to three or fewer.
type Tiers struct {
	Long   int
	Medium int
	Short  int
}

// Pick records one selected target word.
type Pick struct {
	ID           string
	PickedAt     time.Time
	Lang         string
	Length       int
	Word         string
	Position     int
	PoolSize     int
	Candidates   int
	WordListPath string
}

// HistoryFilter selects picks for reporting.
type HistoryFilter struct {
	Lang   string
	Length int
	Since  *time.Time
	Last   int
}

// LengthAggregate summarizes picks for one word length.
type LengthAggregate struct {
	Length       int
	Picks        int
	Distinct     int
	AvgPosition  float64
	MaxPoolSize  int
	MaxCandidate int
}

// WordCount counts how often a word was picked.
type WordCount struct {
	Word  string
	Count int
}
