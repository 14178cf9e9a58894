// internal/game/presenter.go
package game

import (
	"context"

	"github.com/jason-s-yu/cinquillo/internal/models"
)

// EventType tags a notification sent to the presenter and the action journal.
type EventType string

const (
	EventMatchStart  EventType = "match_start"
	EventRoundStart  EventType = "round_start"
	EventFirstPlayer EventType = "first_player"
	EventPlayerTurn  EventType = "player_turn"
	EventIllegalPlay EventType = "illegal_play"
	EventNoLegalMove EventType = "no_legal_move"
	EventNextPlayer  EventType = "next_player"
	EventCardPlayed  EventType = "card_played"
	EventAcePlayed   EventType = "ace_played"
	EventRoundWon    EventType = "round_won"
	EventMatchEnd    EventType = "match_end"
	EventMatchTie    EventType = "match_tie"
)

// Event is a human-readable notice about something that happened in the match.
// Player and Points are set when the event concerns a single player or a score change.
type Event struct {
	Type    EventType `json:"type"`
	Player  string    `json:"player,omitempty"`
	Points  int       `json:"points,omitempty"`
	Card    string    `json:"card,omitempty"`
	Message string    `json:"message"`
}

// Presenter is the I/O shell the match talks to. Prompts block until the user answers and
// re-prompt on their own when input cannot be parsed.
type Presenter interface {
	// PromptPlayerCount returns 3 or 4.
	PromptPlayerCount(ctx context.Context) (int, error)
	// PromptPlayerName asks for the name of the ordinal-th player (1-based).
	PromptPlayerName(ctx context.Context, ordinal int) (string, error)
	// PromptCardIndex returns an index in [0, handSize).
	PromptCardIndex(ctx context.Context, handSize int) (int, error)

	Notify(ev Event)
	RenderHand(p *models.Player)
	RenderTable(t *Table)
	RenderPlayers(players []*models.Player)
}
