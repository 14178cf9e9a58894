// internal/models/card.go
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the four Spanish-deck suits.
type Suit int

const (
	Oros Suit = iota
	Bastos
	Espadas
	Copas
)

// NumSuits and the rank bounds describe the 48-card Spanish deck (8s and 9s included).
const (
	NumSuits = 4
	MinRank  = 1
	MaxRank  = 12

	// OpeningRank is the only rank that can start an empty suit pile.
	OpeningRank = 5
	// AceRank together with AceSuit identifies the card that ends the match.
	AceRank = 1
	AceSuit = Oros
)

// Suits returns the suits in deck order.
func Suits() []Suit {
	return []Suit{Oros, Bastos, Espadas, Copas}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Oros && s <= Copas
}

func (s Suit) String() string {
	return SuitName(s)
}

// SuitName maps a suit to its display name.
func SuitName(s Suit) string {
	switch s {
	case Oros:
		return "Oros"
	case Bastos:
		return "Bastos"
	case Espadas:
		return "Espadas"
	case Copas:
		return "Copas"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// RankName maps a rank to its display name. Ranks 1, 10, 11 and 12 are named; the rest are numeric.
func RankName(rank int) string {
	switch rank {
	case 1:
		return "As"
	case 10:
		return "Sota"
	case 11:
		return "Caballo"
	case 12:
		return "Rey"
	}
	return strconv.Itoa(rank)
}

// Card is an immutable (rank, suit) pair.
type Card struct {
	rank int
	suit Suit
}

// NewCard builds a card. It does not validate; use Valid when the input is untrusted.
func NewCard(rank int, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

func (c Card) Rank() int  { return c.rank }
func (c Card) Suit() Suit { return c.suit }

// Valid reports whether the card belongs to the 48-card deck.
func (c Card) Valid() bool {
	return c.suit.Valid() && c.rank >= MinRank && c.rank <= MaxRank
}

// IsAce reports whether c is the match-ending ace.
func (c Card) IsAce() bool {
	return c.rank == AceRank && c.suit == AceSuit
}

// String renders the canonical label, e.g. "Caballo de copas".
func (c Card) String() string {
	return RankName(c.rank) + " de " + strings.ToLower(SuitName(c.suit))
}
