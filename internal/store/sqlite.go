package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/rank"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	source       TEXT NOT NULL,
	rows         INTEGER NOT NULL,
	dropped      INTEGER NOT NULL,
	observations TEXT NOT NULL,
	loaded_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS rankings (
	id         TEXT PRIMARY KEY,
	dataset_id TEXT NOT NULL REFERENCES datasets(id),
	variables  TEXT NOT NULL,
	threshold  REAL NOT NULL,
	reports    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_datasets_loaded_at ON datasets(loaded_at);
CREATE INDEX IF NOT EXISTS idx_rankings_dataset_id ON rankings(dataset_id);
CREATE INDEX IF NOT EXISTS idx_rankings_created_at ON rankings(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDataset(ctx context.Context, name, source string, obs []model.Observation, dropped int) (*DatasetRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	obsJSON, err := json.Marshal(obs)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal observations")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO datasets (id, name, source, rows, dropped, observations, loaded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, source, len(obs), dropped, string(obsJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert dataset")
	}

	return &DatasetRecord{
		ID:       id,
		Name:     name,
		Source:   source,
		Rows:     len(obs),
		Dropped:  dropped,
		LoadedAt: now,
	}, nil
}

func (s *SQLiteStore) GetDataset(ctx context.Context, id string) (*DatasetRecord, []model.Observation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, source, rows, dropped, observations, loaded_at FROM datasets WHERE id = ?`,
		id,
	)
	return scanDataset(row)
}

func (s *SQLiteStore) LatestDataset(ctx context.Context) (*DatasetRecord, []model.Observation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, source, rows, dropped, observations, loaded_at FROM datasets
		 ORDER BY loaded_at DESC LIMIT 1`,
	)
	return scanDataset(row)
}

func (s *SQLiteStore) SaveRanking(ctx context.Context, datasetID string, res rank.Result, variables []string) (*RankingRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	varsJSON, err := json.Marshal(variables)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal variables")
	}
	reportsJSON, err := json.Marshal(res.Reports)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal reports")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rankings (id, dataset_id, variables, threshold, reports, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, datasetID, string(varsJSON), res.Threshold, string(reportsJSON), now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert ranking for dataset %s", datasetID)
	}

	return &RankingRecord{
		ID:        id,
		DatasetID: datasetID,
		Variables: variables,
		Threshold: res.Threshold,
		Reports:   res.Reports,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetRanking(ctx context.Context, id string) (*RankingRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, dataset_id, variables, threshold, reports, created_at FROM rankings WHERE id = ?`,
		id,
	)
	return scanRanking(row)
}

func (s *SQLiteStore) ListRankings(ctx context.Context, limit int) ([]RankingRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dataset_id, variables, threshold, reports, created_at FROM rankings
		 ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list rankings")
	}
	defer rows.Close()

	var records []RankingRecord
	for rows.Next() {
		r, err := scanRanking(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list rankings iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanDataset(row scannable) (*DatasetRecord, []model.Observation, error) {
	var d DatasetRecord
	var obsJSON string

	err := row.Scan(&d.ID, &d.Name, &d.Source, &d.Rows, &d.Dropped, &obsJSON, &d.LoadedAt)
	if err == sql.ErrNoRows {
		return nil, nil, eris.New("dataset not found")
	}
	if err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: scan dataset")
	}

	var obs []model.Observation
	if err := json.Unmarshal([]byte(obsJSON), &obs); err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: unmarshal observations")
	}
	return &d, obs, nil
}

func scanRanking(row scannable) (*RankingRecord, error) {
	var r RankingRecord
	var varsJSON, reportsJSON string

	err := row.Scan(&r.ID, &r.DatasetID, &varsJSON, &r.Threshold, &reportsJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("ranking not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan ranking")
	}

	if err := json.Unmarshal([]byte(varsJSON), &r.Variables); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal variables")
	}
	if err := json.Unmarshal([]byte(reportsJSON), &r.Reports); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal reports")
	}
	return &r, nil
}
