// internal/game/deck.go
package game

import (
	"errors"

	"github.com/jason-s-yu/cinquillo/internal/models"
)

// DeckSize is the number of cards in a full Spanish deck with 8s and 9s.
const DeckSize = models.NumSuits * models.MaxRank

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// Randomizer is the single source of randomness for shuffling and picking the first player.
// *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Deck is a LIFO stack of cards: the last card inserted is the next one drawn.
type Deck struct {
	cards []models.Card
}

// NewDeck builds a full deck, suit-major and rank-minor.
func NewDeck() *Deck {
	d := &Deck{cards: make([]models.Card, 0, DeckSize)}
	for _, suit := range models.Suits() {
		for rank := models.MinRank; rank <= models.MaxRank; rank++ {
			d.cards = append(d.cards, models.NewCard(rank, suit))
		}
	}
	return d
}

// Insert pushes c on top of the deck.
func (d *Deck) Insert(c models.Card) {
	d.cards = append(d.cards, c)
}

// Draw pops the top card.
func (d *Deck) Draw() (models.Card, error) {
	if len(d.cards) == 0 {
		return models.Card{}, ErrEmptyDeck
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }
func (d *Deck) Len() int      { return len(d.cards) }

// Cards returns a copy of the deck from bottom to top.
func (d *Deck) Cards() []models.Card {
	out := make([]models.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Shuffle pops every card into a scratch slice, swaps each position with one chosen from the
// whole slice, then pushes the result back in order.
//
// Each swap target is drawn from [0, n) rather than the shrinking remainder, so this is not a
// uniform Fisher-Yates shuffle. Existing seeds depend on this exact sequence of Intn calls.
func (d *Deck) Shuffle(r Randomizer) {
	scratch := make([]models.Card, 0, len(d.cards))
	for !d.IsEmpty() {
		c, _ := d.Draw()
		scratch = append(scratch, c)
	}

	n := len(scratch)
	for mov := 0; mov < n; mov++ {
		j := r.Intn(n)
		scratch[mov], scratch[j] = scratch[j], scratch[mov]
	}

	for _, c := range scratch {
		d.Insert(c)
	}
}
