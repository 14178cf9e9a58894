// internal/models/hand.go
package models

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a hand position does not exist.
var ErrIndexOutOfRange = errors.New("hand index out of range")

// CardSink receives cards returned from a hand or the table, usually the deck.
type CardSink interface {
	Insert(c Card)
}

// Hand holds a player's cards in deal order. Cards leave it by position.
type Hand struct {
	cards []Card
}

func (h *Hand) Insert(c Card) {
	h.cards = append(h.cards, c)
}

func (h *Hand) Size() int     { return len(h.cards) }
func (h *Hand) IsEmpty() bool { return len(h.cards) == 0 }

// PeekAt returns the card at position i without removing it.
func (h *Hand) PeekAt(i int) (Card, error) {
	if i < 0 || i >= len(h.cards) {
		return Card{}, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, len(h.cards))
	}
	return h.cards[i], nil
}

// RemoveAt removes and returns the card at position i, shifting later cards down.
func (h *Hand) RemoveAt(i int) (Card, error) {
	c, err := h.PeekAt(i)
	if err != nil {
		return Card{}, err
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return c, nil
}

// DrainInto moves every card, first to last, into sink.
func (h *Hand) DrainInto(sink CardSink) {
	for _, c := range h.cards {
		sink.Insert(c)
	}
	h.cards = h.cards[:0]
}

// Cards returns a copy of the hand in order.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}
