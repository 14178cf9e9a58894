// internal/game/table.go
package game

import (
	"strings"

	"github.com/jason-s-yu/cinquillo/internal/models"
)

// Table holds one pile per suit. A pile is kept ordered from its low end (index 0) to its
// high end and always forms a contiguous run that started from the opening rank.
type Table struct {
	piles [models.NumSuits][]models.Card
}

func NewTable() *Table {
	return &Table{}
}

// CanPlace reports whether c may go on the table right now.
func (t *Table) CanPlace(c models.Card) bool {
	if !c.Suit().Valid() {
		return false
	}
	pile := t.piles[c.Suit()]
	if len(pile) == 0 {
		return c.Rank() == models.OpeningRank
	}
	low, high := pile[0], pile[len(pile)-1]
	if c.Suit() != low.Suit() {
		return false
	}
	return c.Rank() == low.Rank()-1 || c.Rank() == high.Rank()+1
}

// Place puts c on its suit pile and reports whether c is the match-ending ace.
//
// PRECONDITION: CanPlace(c) must be true. Place does not check it again; placing an illegal
// card breaks the pile's contiguity and every later CanPlace answer for that suit.
func (t *Table) Place(c models.Card) bool {
	s := c.Suit()
	switch {
	case c.Rank() == models.OpeningRank:
		t.piles[s] = []models.Card{c}
	case len(t.piles[s]) > 0 && c.Rank() < t.piles[s][0].Rank():
		t.piles[s] = append([]models.Card{c}, t.piles[s]...)
	default:
		t.piles[s] = append(t.piles[s], c)
	}
	return c.IsAce()
}

// Reset moves every card on the table into sink, low end first.
func (t *Table) Reset(sink models.CardSink) {
	for s := range t.piles {
		for _, c := range t.piles[s] {
			sink.Insert(c)
		}
		t.piles[s] = nil
	}
}

// Pile returns a copy of the suit's pile, low end first.
func (t *Table) Pile(s models.Suit) []models.Card {
	if !s.Valid() {
		return nil
	}
	out := make([]models.Card, len(t.piles[s]))
	copy(out, t.piles[s])
	return out
}

// Len is the number of cards on the table.
func (t *Table) Len() int {
	n := 0
	for _, p := range t.piles {
		n += len(p)
	}
	return n
}

// Render lists each pile on its own line, low end to high end.
func (t *Table) Render() string {
	var sb strings.Builder
	for _, s := range models.Suits() {
		sb.WriteString(models.SuitName(s))
		sb.WriteString(": ( ")
		for _, c := range t.piles[s] {
			sb.WriteString(c.String())
			sb.WriteString("; ")
		}
		sb.WriteString(")\n")
	}
	return sb.String()
}
