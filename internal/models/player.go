package models

import "github.com/google/uuid"

// Placer is the part of the table a player needs in order to play.
type Placer interface {
	CanPlace(c Card) bool
	// Place assumes CanPlace(c) already returned true and reports whether c was the ace.
	Place(c Card) bool
}

// Player is a named seat with a hand and a match-long score.
type Player struct {
	id    uuid.UUID
	name  string
	hand  Hand
	score int
}

// NewPlayer creates a player with an empty hand and a zero score.
func NewPlayer(name string) *Player {
	id, _ := uuid.NewRandom()
	return &Player{id: id, name: name}
}

func (p *Player) ID() uuid.UUID { return p.id }
func (p *Player) Name() string  { return p.name }
func (p *Player) Score() int    { return p.score }
func (p *Player) Hand() *Hand   { return &p.hand }

// AddScore adds points to the score. Negative values are ignored so a score never goes down.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.score += points
	}
}

func (p *Player) HandEmpty() bool { return p.hand.IsEmpty() }

func (p *Player) InsertCard(c Card) { p.hand.Insert(c) }

func (p *Player) PeekCard(i int) (Card, error) { return p.hand.PeekAt(i) }

// CanPlaySomething reports whether any card in the hand fits on the table.
func (p *Player) CanPlaySomething(table Placer) bool {
	for _, c := range p.hand.cards {
		if table.CanPlace(c) {
			return true
		}
	}
	return false
}

// PlayCard moves the card at index i from the hand onto the table and returns the ace signal.
// The caller must have checked table.CanPlace for that card.
func (p *Player) PlayCard(table Placer, i int) (bool, error) {
	c, err := p.hand.RemoveAt(i)
	if err != nil {
		return false, err
	}
	return table.Place(c), nil
}

// SurrenderHand returns every card in the hand to sink.
func (p *Player) SurrenderHand(sink CardSink) {
	p.hand.DrainInto(sink)
}
