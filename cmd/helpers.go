package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/store"
)

// initStore opens and migrates the SQLite store from config.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// resolveDataset fetches a dataset by ID, or the most recent one when id is
// empty.
func resolveDataset(ctx context.Context, st store.Store, id string) (*store.DatasetRecord, []model.Observation, error) {
	if id != "" {
		return st.GetDataset(ctx, id)
	}
	rec, obs, err := st.LatestDataset(ctx)
	if err != nil {
		return nil, nil, eris.Wrap(err, "no dataset available, run import first")
	}
	return rec, obs, nil
}

// candidateVars returns the explicit flag value when given, falling back to
// the configured candidate set.
func candidateVars(flagVars []string) []string {
	if len(flagVars) > 0 {
		return flagVars
	}
	return cfg.Data.Variables
}
