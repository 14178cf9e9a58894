// internal/database/match.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/cinquillo/internal/cache"
	"github.com/jason-s-yu/cinquillo/internal/game"
)

// RecordMatch stores a finished match: one row per match, per player and per round.
func (s *Store) RecordMatch(ctx context.Context, sum *game.Summary) error {
	winners := make(map[uuid.UUID]bool, len(sum.Winners))
	for _, w := range sum.Winners {
		winners[w.ID] = true
	}

	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertMatch := `
			INSERT INTO matches (id, rounds)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET rounds = $2, finished_at = NOW()
		`
		if _, e := tx.Exec(ctx, upsertMatch, sum.MatchID, len(sum.Rounds)); e != nil {
			return e
		}

		for seat, p := range sum.Scores {
			q := `
				INSERT INTO match_players (match_id, player_id, seat, name, score, did_win)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (match_id, player_id)
				DO UPDATE SET score = $5, did_win = $6
			`
			if _, e := tx.Exec(ctx, q, sum.MatchID, p.ID, seat, p.Name, p.Score, winners[p.ID]); e != nil {
				return e
			}
		}

		for _, r := range sum.Rounds {
			q := `
				INSERT INTO match_rounds (match_id, round, winner_id, ace_by, ace_bonus)
				VALUES ($1, $2, $3, NULLIF($4, ''), $5)
				ON CONFLICT (match_id, round) DO NOTHING
			`
			if _, e := tx.Exec(ctx, q, sum.MatchID, r.Round, r.WinnerID, r.AceBy, r.AceBonus); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx record match %s: %w", sum.MatchID, err)
	}
	return nil
}

// MatchWinners returns the names of the recorded winners of a match, in seat order.
func (s *Store) MatchWinners(ctx context.Context, matchID uuid.UUID) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name FROM match_players WHERE match_id = $1 AND did_win ORDER BY seat`, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying winners: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning winners: %w", err)
	}
	return names, nil
}

// InsertActions writes a batch of journal records in a single transaction. Records already
// stored are skipped, so a batch can be retried.
func (s *Store) InsertActions(ctx context.Context, records []cache.MatchActionRecord) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			payload, err := json.Marshal(rec.ActionPayload)
			if err != nil {
				return fmt.Errorf("marshal payload of action %d: %w", rec.ActionIndex, err)
			}
			q := `
				INSERT INTO match_actions (match_id, action_index, actor_id, action_type, action_payload, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (match_id, action_index) DO NOTHING
			`
			_, err = tx.Exec(ctx, q,
				rec.MatchID, rec.ActionIndex, rec.ActorID, rec.ActionType, payload, time.UnixMilli(rec.Timestamp),
			)
			if err != nil {
				return fmt.Errorf("insert action %d: %w", rec.ActionIndex, err)
			}
		}
		return nil
	})
}

// CountActions returns how many journal records are stored for a match.
func (s *Store) CountActions(ctx context.Context, matchID uuid.UUID) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM match_actions WHERE match_id = $1`, matchID).Scan(&n)
	return n, err
}
