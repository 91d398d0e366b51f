package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lox/pokertourney/internal/sandbox"
	"github.com/lox/pokertourney/internal/statistics"
	"github.com/lox/pokertourney/internal/tournament"
)

func TestRenderStandings(t *testing.T) {
	r := &tournament.Result{
		ID:        uuid.Must(uuid.NewV7()),
		Seed:      42,
		Hands:     87,
		Completed: true,
		Standings: []tournament.Standing{
			{Place: 1, Seat: 1, Name: "bob", Agent: "aggressive", Stack: 2000},
			{Place: 2, Seat: 0, Name: "alice", Agent: "random", BustedRound: 80},
		},
		Sandbox: map[int]sandbox.Stats{0: {Calls: 50, Timeouts: 2, Restarts: 2}},
	}

	out := renderStandings(r)
	assert.Contains(t, out, "seed 42")
	assert.Contains(t, out, "87 hands")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "r80")
	assert.Contains(t, out, "2 faults (2 timeouts")
}

func TestRenderBatch(t *testing.T) {
	agents := statistics.ByAgent{}
	agents.Add("random", statistics.Placement{Place: 2, Hands: 100})
	agents.Add("aggressive", statistics.Placement{Place: 1, Hands: 100})

	out := renderBatch(&tournament.BatchResult{
		BaseSeed: 7,
		Results:  make([]*tournament.Result, 1),
		Agents:   agents,
		Elapsed:  1500 * time.Millisecond,
	})
	assert.Contains(t, out, "1 tournaments from seed 7 in 1.5s")
	assert.Contains(t, out, "aggressive")
	assert.Contains(t, out, "100.0%")
}

func TestFlagsOverrideConfig(t *testing.T) {
	seed := int64(9)
	hands := 12
	flags := TournamentFlags{
		Config:    t.TempDir() + "/missing.hcl",
		Seats:     []string{"folder", "callingstation"},
		Seed:      &seed,
		MaxHands:  &hands,
		InProcess: true,
	}

	cfg, err := flags.load()
	assert.NoError(t, err)
	assert.Len(t, cfg.Seats, 2)
	assert.Equal(t, "folder", cfg.Seats[0].Agent)
	assert.Equal(t, int64(9), *cfg.Seed)
	assert.Equal(t, 12, cfg.MaxHands)
	assert.True(t, cfg.Sandbox.Disabled)

	flags.Seats = []string{"nobody", "random"}
	_, err = flags.load()
	assert.ErrorIs(t, err, tournament.ErrInvalidConfig)
}
