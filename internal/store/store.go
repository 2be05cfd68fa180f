// Package store persists imported datasets and ranking runs.
package store

import (
	"context"
	"time"

	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/rank"
)

// DatasetRecord is a stored, cleaned observation set.
type DatasetRecord struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	Dropped  int       `json:"dropped"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RankingRecord is a stored appropriateness ranking run.
type RankingRecord struct {
	ID        string        `json:"id"`
	DatasetID string        `json:"dataset_id"`
	Variables []string      `json:"variables"`
	Threshold float64       `json:"threshold"`
	Reports   []rank.Report `json:"reports"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store persists datasets and ranking runs.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	SaveDataset(ctx context.Context, name, source string, obs []model.Observation, dropped int) (*DatasetRecord, error)
	GetDataset(ctx context.Context, id string) (*DatasetRecord, []model.Observation, error)
	LatestDataset(ctx context.Context) (*DatasetRecord, []model.Observation, error)

	SaveRanking(ctx context.Context, datasetID string, res rank.Result, variables []string) (*RankingRecord, error)
	GetRanking(ctx context.Context, id string) (*RankingRecord, error)
	ListRankings(ctx context.Context, limit int) ([]RankingRecord, error)
}
