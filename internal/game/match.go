// internal/game/match.go
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cinquillo/internal/cache"
	"github.com/jason-s-yu/cinquillo/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidPlayerCount is returned when a match is set up with fewer than 3 or more than 4 players.
	ErrInvalidPlayerCount = errors.New("invalid player count")
	// ErrCardCountMismatch means cards were lost or duplicated between deck, hands and table.
	// It indicates a bug, not a user error.
	ErrCardCountMismatch = errors.New("card count mismatch")
	// ErrNoPlayers is returned by operations that need a seated match.
	ErrNoPlayers = errors.New("match has no players")
)

// State is the match lifecycle phase.
type State string

const (
	StateSetup      State = "setup"
	StateRoundStart State = "round_start"
	StateTurnLoop   State = "turn_loop"
	StateRoundEnd   State = "round_end"
	StateMatchEnd   State = "match_end"
)

// Journal receives every match action. cache.Journal is the Redis-backed implementation.
type Journal interface {
	PublishMatchAction(ctx context.Context, record cache.MatchActionRecord) error
}

// RoundResult records how a round finished.
type RoundResult struct {
	Round    int       `json:"round"`
	WinnerID uuid.UUID `json:"winner_id"`
	Winner   string    `json:"winner"`
	AceBonus int       `json:"ace_bonus"`

	// AceBy is the name of the player who placed the ace this round, empty if nobody did.
	AceBy string `json:"ace_by,omitempty"`
}

// PlayerScore is a player's identity and score at the end of a match.
type PlayerScore struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"`
}

// Summary is the outcome of a finished match.
type Summary struct {
	MatchID uuid.UUID     `json:"match_id"`
	Rounds  []RoundResult `json:"rounds"`
	Scores  []PlayerScore `json:"scores"`
	Winners []PlayerScore `json:"winners"`
}

// Option customizes a Match.
type Option func(*Match)

// WithLogger sets the logger used for lifecycle logging.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Match) { m.logger = l }
}

// WithJournal publishes every match action to j.
func WithJournal(j Journal) Option {
	return func(m *Match) { m.journal = j }
}

// WithPlayerNames seats the given players instead of prompting for them.
func WithPlayerNames(names ...string) Option {
	return func(m *Match) { m.presetNames = names }
}

// Match runs one Cinquillo-Oro match from seating to winners. It is driven by a single
// goroutine and is not safe for concurrent use.
type Match struct {
	ID uuid.UUID

	players []*models.Player
	order   *TurnOrder
	deck    *Deck
	table   *Table

	rng       Randomizer
	presenter Presenter
	journal   Journal
	logger    logrus.FieldLogger

	presetNames []string

	state    State
	round    int
	aceBonus int
	aceEnded bool
	aceBy    string
	history  []RoundResult

	actionIndex int
}

// NewMatch builds a match with a fresh deck and an empty table.
func NewMatch(p Presenter, rng Randomizer, opts ...Option) *Match {
	id, _ := uuid.NewRandom()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	m := &Match{
		ID:        id,
		deck:      NewDeck(),
		table:     NewTable(),
		rng:       rng,
		presenter: p,
		logger:    quiet,
		state:     StateSetup,
		aceBonus:  InitialAceBonus,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithField("match_id", m.ID)
	return m
}

func (m *Match) State() State { return m.state }
func (m *Match) Round() int { return m.round }
func (m *Match) AceBonus() int { return m.aceBonus }
func (m *Match) Table() *Table { return m.table }
func (m *Match) Deck() *Deck { return m.deck }
func (m *Match) History() []RoundResult { return append([]RoundResult(nil), m.history...) }
func (m *Match) Players() []*models.Player { return append([]*models.Player(nil), m.players...) }

// TurnOrder lists the players starting from the one whose turn it is.
func (m *Match) TurnOrder() []*models.Player {
	if m.order == nil {
		return nil
	}
	out := make([]*models.Player, 0, m.order.Len())
	for _, seat := range m.order.Seats() {
		out = append(out, m.players[seat])
	}
	return out
}

// Play runs the match to completion: rounds are played until one ends with the ace on the table.
func (m *Match) Play(ctx context.Context) (*Summary, error) {
	if err := m.Setup(ctx); err != nil {
		return nil, err
	}

	for !m.aceEnded {
		if err := m.PlayRound(ctx); err != nil {
			return nil, err
		}
	}

	return m.finish(), nil
}

// Setup seats the players, prompting for them unless names were preset.
func (m *Match) Setup(ctx context.Context) error {
	m.state = StateSetup

	names := m.presetNames
	if names == nil {
		n, err := m.presenter.PromptPlayerCount(ctx)
		if err != nil {
			return fmt.Errorf("reading player count: %w", err)
		}
		if !ValidPlayerCount(n) {
			return fmt.Errorf("%w: %d", ErrInvalidPlayerCount, n)
		}
		for i := 1; i <= n; i++ {
			name, err := m.presenter.PromptPlayerName(ctx, i)
			if err != nil {
				return fmt.Errorf("reading name of player %d: %w", i, err)
			}
			names = append(names, name)
		}
	}
	if !ValidPlayerCount(len(names)) {
		return fmt.Errorf("%w: %d", ErrInvalidPlayerCount, len(names))
	}

	m.players = make([]*models.Player, 0, len(names))
	for _, name := range names {
		m.players = append(m.players, models.NewPlayer(strings.TrimSpace(name)))
	}
	m.order = NewTurnOrder(len(m.players))

	m.logger.WithField("players", len(m.players)).Info("Match set up")
	m.notify(uuid.Nil, Event{
		Type:    EventMatchStart,
		Message: fmt.Sprintf("This is a game for %d players: %s", len(m.players), strings.Join(m.playerNames(m.players), ", ")),
	})
	return nil
}

// PlayRound plays one round: deal, turns until a hand is empty, scoring and cleanup.
func (m *Match) PlayRound(ctx context.Context) error {
	if len(m.players) == 0 {
		return ErrNoPlayers
	}
	if err := m.startRound(); err != nil {
		return err
	}

	m.state = StateTurnLoop
	for !m.activePlayer().HandEmpty() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.playTurn(ctx); err != nil {
			return err
		}
	}

	return m.endRound()
}

// startRound picks the first player, shuffles and deals the whole deck.
func (m *Match) startRound() error {
	m.state = StateRoundStart
	m.round++
	m.aceBy = ""

	first := m.rng.Intn(len(m.players))
	m.order.BringToFront(first)

	m.deck.Shuffle(m.rng)
	if err := m.deal(); err != nil {
		return err
	}

	log := m.logger.WithFields(logrus.Fields{"round": m.round, "player": m.players[first].Name()})
	log.Info("Round started")

	m.notify(uuid.Nil, Event{
		Type:    EventRoundStart,
		Points:  m.aceBonus,
		Message: fmt.Sprintf("Round %d, the ace of oros is worth %d points", m.round, m.aceBonus),
	})
	m.presenter.RenderPlayers(m.TurnOrder())
	m.notify(m.players[first].ID(), Event{
		Type:    EventFirstPlayer,
		Player:  m.players[first].Name(),
		Message: "The first player is: " + m.players[first].Name(),
	})
	return nil
}

// deal hands out the deck round-robin starting from the front of the turn order.
func (m *Match) deal() error {
	for i := 0; !m.deck.IsEmpty(); i++ {
		c, err := m.deck.Draw()
		if err != nil {
			return fmt.Errorf("dealing: %w", err)
		}
		m.players[m.order.At(i)].InsertCard(c)
	}
	return nil
}

// playTurn gives the front player one turn and rotates them away unless their hand emptied.
func (m *Match) playTurn(ctx context.Context) error {
	active := m.activePlayer()
	m.notify(active.ID(), Event{
		Type:    EventPlayerTurn,
		Player:  active.Name(),
		Message: "Turn of " + active.Name(),
	})
	m.presenter.RenderTable(m.table)

	if active.CanPlaySomething(m.table) {
		m.presenter.RenderHand(active)
		idx, err := m.chooseCard(ctx, active)
		if err != nil {
			return err
		}
		card, _ := active.PeekCard(idx)
		ace, err := active.PlayCard(m.table, idx)
		if err != nil {
			return fmt.Errorf("playing card %d for %s: %w", idx, active.Name(), err)
		}
		m.notify(active.ID(), Event{
			Type:    EventCardPlayed,
			Player:  active.Name(),
			Card:    card.String(),
			Message: fmt.Sprintf("%s plays %s", active.Name(), card),
		})

		if ace {
			active.AddScore(m.aceBonus)
			m.aceEnded = true
			m.aceBy = active.Name()
			m.logger.WithFields(logrus.Fields{"round": m.round, "player": active.Name(), "points": m.aceBonus}).Info("Ace of oros played")
			m.notify(active.ID(), Event{
				Type:    EventAcePlayed,
				Player:  active.Name(),
				Points:  m.aceBonus,
				Message: fmt.Sprintf("%s placed the ace of oros and earns %d points, the match ends after this round", active.Name(), m.aceBonus),
			})
		}
	} else {
		m.notify(active.ID(), Event{
			Type:    EventNoLegalMove,
			Player:  active.Name(),
			Message: active.Name() + " cannot play any card",
		})
	}

	if !active.HandEmpty() {
		m.order.RotateToBack()
		m.notify(uuid.Nil, Event{Type: EventNextPlayer, Message: "Next player"})
	}
	return nil
}

// chooseCard asks the presenter for a hand index until it names a card the table accepts.
// The caller guarantees at least one such card exists.
func (m *Match) chooseCard(ctx context.Context, p *models.Player) (int, error) {
	for {
		idx, err := m.presenter.PromptCardIndex(ctx, p.Hand().Size())
		if err != nil {
			return 0, fmt.Errorf("reading card choice for %s: %w", p.Name(), err)
		}
		if c, err := p.PeekCard(idx); err == nil && m.table.CanPlace(c) {
			return idx, nil
		}
		m.logger.WithFields(logrus.Fields{"player": p.Name(), "index": idx}).Debug("Illegal card choice")
		m.notify(p.ID(), Event{
			Type:    EventIllegalPlay,
			Player:  p.Name(),
			Message: "You cannot play that card",
		})
	}
}

// endRound scores the round winner, returns every card to the deck and raises the ace bonus.
func (m *Match) endRound() error {
	m.state = StateRoundEnd
	winner := m.activePlayer()
	winner.AddScore(RoundWinBonus)

	m.history = append(m.history, RoundResult{
		Round:    m.round,
		WinnerID: winner.ID(),
		Winner:   winner.Name(),
		AceBy:    m.aceBy,
		AceBonus: m.aceBonus,
	})
	m.logger.WithFields(logrus.Fields{"round": m.round, "player": winner.Name()}).Info("Round won")
	m.notify(winner.ID(), Event{
		Type:    EventRoundWon,
		Player:  winner.Name(),
		Points:  RoundWinBonus,
		Message: "The winner of the round is: " + winner.Name(),
	})

	m.table.Reset(m.deck)
	for _, p := range m.players {
		p.SurrenderHand(m.deck)
	}
	if err := m.checkCardCount(); err != nil {
		return err
	}

	m.aceBonus += AceBonusStep
	return nil
}

// checkCardCount verifies that deck, table and hands together still hold the whole deck.
func (m *Match) checkCardCount() error {
	total := m.deck.Len() + m.table.Len()
	for _, p := range m.players {
		total += p.Hand().Size()
	}
	if total != DeckSize {
		m.logger.WithField("total", total).Error("Card count mismatch")
		return fmt.Errorf("%w: have %d, want %d", ErrCardCountMismatch, total, DeckSize)
	}
	return nil
}

// ListWinners returns every player tied at the lowest score.
//
// NOTE: the lowest score wins. Both bonuses add points, so this inverts the usual reading
// of the rules, but it is the historical behaviour and is kept as is.
func (m *Match) ListWinners() []*models.Player {
	if len(m.players) == 0 {
		return nil
	}
	lowest := m.players[0].Score()
	for _, p := range m.players[1:] {
		if p.Score() < lowest {
			lowest = p.Score()
		}
	}
	var winners []*models.Player
	for _, p := range m.players {
		if p.Score() == lowest {
			winners = append(winners, p)
		}
	}
	return winners
}

// finish announces the winners and builds the summary.
func (m *Match) finish() *Summary {
	m.state = StateMatchEnd
	winners := m.ListWinners()

	if len(winners) == 1 {
		w := winners[0]
		m.notify(w.ID(), Event{
			Type:    EventMatchEnd,
			Player:  w.Name(),
			Points:  w.Score(),
			Message: fmt.Sprintf("%s wins with %d points", w.Name(), w.Score()),
		})
	} else {
		m.notify(uuid.Nil, Event{
			Type:    EventMatchTie,
			Points:  winners[0].Score(),
			Message: fmt.Sprintf("There is a tie at %d points between: %s", winners[0].Score(), strings.Join(m.playerNames(winners), " - ")),
		})
	}

	s := &Summary{
		MatchID: m.ID,
		Rounds:  m.History(),
		Scores:  scoresOf(m.players),
		Winners: scoresOf(winners),
	}
	m.logger.WithFields(logrus.Fields{"rounds": len(s.Rounds), "winners": m.playerNames(winners)}).Info("Match ended")
	return s
}

func (m *Match) activePlayer() *models.Player {
	return m.players[m.order.Front()]
}

func (m *Match) playerNames(players []*models.Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name()
	}
	return names
}

func scoresOf(players []*models.Player) []PlayerScore {
	out := make([]PlayerScore, len(players))
	for i, p := range players {
		out[i] = PlayerScore{ID: p.ID(), Name: p.Name(), Score: p.Score()}
	}
	return out
}

// notify forwards ev to the presenter and records it in the journal.
func (m *Match) notify(actor uuid.UUID, ev Event) {
	m.presenter.Notify(ev)
	m.logAction(actor, string(ev.Type), eventPayload(ev))
}

// logAction publishes an action to the journal, if one is configured. Publishing is synchronous
// so the record order matches the play order.
func (m *Match) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	m.actionIndex++
	if m.journal == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	payload["round"] = m.round
	record := cache.MatchActionRecord{
		MatchID:       m.ID,
		ActionIndex:   m.actionIndex,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.journal.PublishMatchAction(ctx, record); err != nil {
		m.logger.WithError(err).WithField("action_index", record.ActionIndex).Warn("Failed to publish match action")
	}
}
