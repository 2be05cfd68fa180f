package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ess-tools/atlas-cli/internal/config"
	"github.com/ess-tools/atlas-cli/internal/rank"
	"github.com/ess-tools/atlas-cli/internal/store"
)

func TestCandidateVars(t *testing.T) {
	orig := cfg
	cfg = &config.Config{Data: config.DataConfig{Variables: []string{"stflife", "happy"}}}
	t.Cleanup(func() { cfg = orig })

	assert.Equal(t, []string{"ppltrst"}, candidateVars([]string{"ppltrst"}))
	assert.Equal(t, []string{"stflife", "happy"}, candidateVars(nil))
}

func TestCountAppropriate(t *testing.T) {
	rec := store.RankingRecord{Reports: []rank.Report{
		{Variable: "stflife", Outcome: rank.OutcomeAppropriate},
		{Variable: "happy", Outcome: rank.OutcomeNotAppropriate},
		{Variable: "sclmeet", Outcome: rank.OutcomeAppropriate},
		{Variable: "health", Outcome: rank.OutcomeInsufficientData},
	}}
	assert.Equal(t, 2, countAppropriate(rec))
}
