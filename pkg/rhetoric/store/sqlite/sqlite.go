package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens the database at path with WAL mode and creates the schema
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS speeches (
	id TEXT PRIMARY KEY,
	title TEXT,
	author TEXT,
	source TEXT,
	timestamp TEXT,
	text TEXT,
	metadata TEXT
);

CREATE INDEX IF NOT EXISTS speeches_author ON speeches(author);

CREATE TABLE IF NOT EXISTS synset_records (
	grp TEXT NOT NULL,
	synset TEXT NOT NULL,
	speech_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	title TEXT,
	author TEXT,
	source TEXT,
	timestamp TEXT,
	n_matches INTEGER NOT NULL,
	n_total INTEGER NOT NULL,
	proportion REAL NOT NULL,
	PRIMARY KEY(grp, synset, speech_id)
);

CREATE TABLE IF NOT EXISTS collocations (
	t1 TEXT NOT NULL,
	t2 TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(t1, t2)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// UpsertSpeech inserts or replaces a speech by ID
func (s *sqliteStore) UpsertSpeech(ctx context.Context, sp store.Speech) error {
	meta, err := json.Marshal(sp.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO speeches (id, title, author, source, timestamp, text, metadata)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title=excluded.title,
	author=excluded.author,
	source=excluded.source,
	timestamp=excluded.timestamp,
	text=excluded.text,
	metadata=excluded.metadata;
`, sp.ID, sp.Title, sp.Author, sp.Source, formatTime(sp.Timestamp), sp.Text, string(meta))
	return err
}

const speechColumns = `id, title, author, source, timestamp, text, metadata`

type scanner interface {
	Scan(dest ...any) error
}

func scanSpeech(row scanner) (store.Speech, error) {
	var (
		sp       store.Speech
		ts, meta string
	)
	if err := row.Scan(&sp.ID, &sp.Title, &sp.Author, &sp.Source, &ts, &sp.Text, &meta); err != nil {
		return store.Speech{}, err
	}
	t, err := parseTime(ts)
	if err != nil {
		return store.Speech{}, fmt.Errorf("speech %s timestamp: %w", sp.ID, err)
	}
	sp.Timestamp = t
	sp.Metadata = map[string]any{}
	if meta != "" && meta != "null" {
		if err := json.Unmarshal([]byte(meta), &sp.Metadata); err != nil {
			return store.Speech{}, fmt.Errorf("speech %s metadata: %w", sp.ID, err)
		}
	}
	return sp, nil
}

// GetSpeech returns the speech with the given ID
func (s *sqliteStore) GetSpeech(ctx context.Context, id string) (store.Speech, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+speechColumns+` FROM speeches WHERE id = ?`, id)
	sp, err := scanSpeech(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Speech{}, false, nil
	}
	if err != nil {
		return store.Speech{}, false, err
	}
	return sp, true, nil
}

// SpeechesByAuthor returns an author's speeches in timestamp order
func (s *sqliteStore) SpeechesByAuthor(ctx context.Context, author string) ([]store.Speech, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+speechColumns+` FROM speeches WHERE author = ? ORDER BY timestamp, id`, author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Speech
	for rows.Next() {
		sp, err := scanSpeech(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// PutSynsetRecords writes all records in one transaction, replacing any
// with the same group, synset and speech
func (s *sqliteStore) PutSynsetRecords(ctx context.Context, recs []synset.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO synset_records
	(grp, synset, speech_id, position, title, author, source, timestamp, n_matches, n_total, proportion)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(grp, synset, speech_id) DO UPDATE SET
	position=excluded.position,
	title=excluded.title,
	author=excluded.author,
	source=excluded.source,
	timestamp=excluded.timestamp,
	n_matches=excluded.n_matches,
	n_total=excluded.n_total,
	proportion=excluded.proportion;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		if _, err := stmt.ExecContext(ctx,
			r.Group, r.Synset, r.SpeechID, r.ID, r.Title, r.Author, r.Source,
			formatTime(r.Timestamp), r.Matches, r.Total, r.Proportion,
		); err != nil {
			return fmt.Errorf("record %s/%s/%s: %w", r.Group, r.Synset, r.SpeechID, err)
		}
	}
	return tx.Commit()
}

// SynsetRecords returns a group's records ordered by synset, then position
func (s *sqliteStore) SynsetRecords(ctx context.Context, group string) ([]synset.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT grp, synset, speech_id, position, title, author, source, timestamp, n_matches, n_total, proportion
FROM synset_records
WHERE grp = ?
ORDER BY synset, position;
`, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []synset.Record
	for rows.Next() {
		var (
			r  synset.Record
			ts string
		)
		if err := rows.Scan(&r.Group, &r.Synset, &r.SpeechID, &r.ID, &r.Title, &r.Author, &r.Source,
			&ts, &r.Matches, &r.Total, &r.Proportion); err != nil {
			return nil, err
		}
		if r.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// IncPair increments the co-occurrence count of a pair
func (s *sqliteStore) IncPair(ctx context.Context, a, b string) error {
	if a == b {
		return nil
	}
	a, b = store.Ordered(a, b)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO collocations (t1, t2, count) VALUES (?, ?, 1)
ON CONFLICT(t1, t2) DO UPDATE SET count=count+1;
`, a, b)
	return err
}

// AddPairs adds counts in one transaction. Counts holds both orders of
// every pair, so only the A < B half is written
func (s *sqliteStore) AddPairs(ctx context.Context, counts colloc.Counts[string]) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO collocations (t1, t2, count) VALUES (?, ?, ?)
ON CONFLICT(t1, t2) DO UPDATE SET count=count+excluded.count;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for p, n := range counts {
		if p.A >= p.B || n <= 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, p.A, p.B, n); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PairCount returns the co-occurrence count of a pair
func (s *sqliteStore) PairCount(ctx context.Context, a, b string) (int64, error) {
	a, b = store.Ordered(a, b)
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM collocations WHERE t1 = ? AND t2 = ?`, a, b).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

// TopCollocates returns the k tokens seen most often with token, ties by
// ascending token. k <= 0 means 10
func (s *sqliteStore) TopCollocates(ctx context.Context, token string, k int) ([]store.Collocate, error) {
	if k <= 0 {
		k = 10
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT
	CASE WHEN t1 = ? THEN t2 ELSE t1 END AS other,
	count
FROM collocations
WHERE t1 = ? OR t2 = ?
ORDER BY count DESC, other ASC
LIMIT ?;
`, token, token, token, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Collocate
	for rows.Next() {
		var c store.Collocate
		if err := rows.Scan(&c.Token, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
