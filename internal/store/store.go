// Package store handles SQLite persistence of picked words.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/wordpick/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a pick does not exist.
var ErrNotFound = errors.New("pick not found")

// Store wraps SQLite access for pick history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Debug().Err(cerr).Msg("close db after failed migration")
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS picks (
			id TEXT PRIMARY KEY,
			picked_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			length INTEGER NOT NULL,
			word TEXT NOT NULL,
			position INTEGER NOT NULL,
			pool_size INTEGER NOT NULL,
			candidates INTEGER NOT NULL,
			wordlist_path TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_picked_at ON picks(picked_at);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_length ON picks(length);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPick stores a pick and returns its id. A new id is assigned when
// pick.ID is empty.
func (s *Store) InsertPick(ctx context.Context, pick model.Pick) (string, error) {
	if pick.ID == "" {
		pick.ID = uuid.NewString()
	}
	if pick.PickedAt.IsZero() {
		pick.PickedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO picks (id, picked_at, lang, length, word, position, pool_size, candidates, wordlist_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pick.ID,
		pick.PickedAt.UTC().Format(time.RFC3339Nano),
		pick.Lang,
		pick.Length,
		pick.Word,
		pick.Position,
		pick.PoolSize,
		pick.Candidates,
		pick.WordListPath,
	)
	if err != nil {
		return "", err
	}
	return pick.ID, nil
}

// GetPick returns a pick by id. A unique id prefix is accepted.
func (s *Store) GetPick(ctx context.Context, id string) (model.Pick, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Pick{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, picked_at, lang, length, word, position, pool_size, candidates, wordlist_path
		 FROM picks WHERE id = ? OR id LIKE ? ORDER BY picked_at ASC LIMIT 2`, id, id+"%")
	if err != nil {
		return model.Pick{}, err
	}
	picks, err := scanPicks(rows)
	if err != nil {
		return model.Pick{}, err
	}
	switch len(picks) {
	case 0:
		return model.Pick{}, ErrNotFound
	case 1:
		return picks[0], nil
	default:
		for _, p := range picks {
			if p.ID == id {
				return p, nil
			}
		}
		return model.Pick{}, fmt.Errorf("pick id %q is ambiguous", id)
	}
}

// ListPicks returns picks matching the filter in ascending time order.
func (s *Store) ListPicks(ctx context.Context, filter model.HistoryFilter) ([]model.Pick, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`SELECT id, picked_at, lang, length, word, position, pool_size, candidates, wordlist_path
		FROM picks
		WHERE %s
		ORDER BY picked_at ASC`, where)
	if filter.Last > 0 {
		query = fmt.Sprintf(`SELECT * FROM (SELECT id, picked_at, lang, length, word, position, pool_size, candidates, wordlist_path
			FROM picks
			WHERE %s
			ORDER BY picked_at DESC
			LIMIT ?) ORDER BY picked_at ASC`, where)
		args = append(args, filter.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPicks(rows)
}

// WordCounts returns how often each word was picked, most picked first.
func (s *Store) WordCounts(ctx context.Context, filter model.HistoryFilter) ([]model.WordCount, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`SELECT word, COUNT(*) AS n
		FROM picks
		WHERE %s
		GROUP BY word
		ORDER BY n DESC, word ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var result []model.WordCount
	for rows.Next() {
		var wc model.WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, err
		}
		result = append(result, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func filterClause(filter model.HistoryFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, filter.Lang)
	}
	if filter.Length > 0 {
		clauses = append(clauses, "length = ?")
		args = append(args, filter.Length)
	}
	if filter.Since != nil {
		clauses = append(clauses, "picked_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

func scanPicks(rows *sql.Rows) ([]model.Pick, error) {
	defer closeRows(rows)

	var picks []model.Pick
	for rows.Next() {
		var p model.Pick
		var pickedAt string
		if err := rows.Scan(&p.ID, &pickedAt, &p.Lang, &p.Length, &p.Word, &p.Position, &p.PoolSize, &p.Candidates, &p.WordListPath); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, pickedAt)
		if err != nil {
			return nil, err
		}
		p.PickedAt = parsed
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return picks, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Debug().Err(err).Msg("close rows")
	}
}
