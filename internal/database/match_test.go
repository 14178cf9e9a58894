package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cinquillo/internal/cache"
	"github.com/jason-s-yu/cinquillo/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectTestStore needs a reachable Postgres in DATABASE_URL; the test is skipped otherwise.
func connectTestStore(t *testing.T) *Store {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Connect(ctx, url)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))
	t.Cleanup(s.Close)
	return s
}

func TestRecordMatch(t *testing.T) {
	s := connectTestStore(t)
	ctx := context.Background()

	ana, luis, marta := uuid.New(), uuid.New(), uuid.New()
	sum := &game.Summary{
		MatchID: uuid.New(),
		Rounds: []game.RoundResult{
			{Round: 1, WinnerID: luis, Winner: "Luis", AceBonus: 2},
			{Round: 2, WinnerID: marta, Winner: "Marta", AceBy: "Marta", AceBonus: 4},
		},
		Scores: []game.PlayerScore{
			{ID: ana, Name: "Ana", Score: 0},
			{ID: luis, Name: "Luis", Score: 4},
			{ID: marta, Name: "Marta", Score: 8},
		},
		Winners: []game.PlayerScore{{ID: ana, Name: "Ana", Score: 0}},
	}

	require.NoError(t, s.RecordMatch(ctx, sum))
	require.NoError(t, s.RecordMatch(ctx, sum), "recording twice is idempotent")

	winners, err := s.MatchWinners(ctx, sum.MatchID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, winners)
}

func TestInsertActionsSkipsDuplicates(t *testing.T) {
	s := connectTestStore(t)
	ctx := context.Background()

	matchID := uuid.New()
	recs := []cache.MatchActionRecord{
		{MatchID: matchID, ActionIndex: 1, ActionType: "match_start", ActionPayload: map[string]interface{}{"round": 0}, Timestamp: time.Now().UnixMilli()},
		{MatchID: matchID, ActionIndex: 2, ActorID: uuid.New(), ActionType: "player_turn", Timestamp: time.Now().UnixMilli()},
	}
	require.NoError(t, s.InsertActions(ctx, recs))
	require.NoError(t, s.InsertActions(ctx, recs))

	n, err := s.CountActions(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
