package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlacer accepts only the cards in its allow set and remembers what was placed.
type fakePlacer struct {
	allow  map[Card]bool
	placed []Card
	calls  int
}

func (f *fakePlacer) CanPlace(c Card) bool {
	f.calls++
	return f.allow[c]
}

func (f *fakePlacer) Place(c Card) bool {
	f.placed = append(f.placed, c)
	return c.IsAce()
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("Ana")
	assert.Equal(t, "Ana", p.Name())
	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Zero(t, p.Score())
	assert.True(t, p.HandEmpty())
}

func TestAddScoreNeverDecreases(t *testing.T) {
	p := NewPlayer("Ana")
	p.AddScore(4)
	p.AddScore(2)
	p.AddScore(-10)
	assert.Equal(t, 6, p.Score())
}

func TestCanPlaySomethingEmptyHand(t *testing.T) {
	p := NewPlayer("Ana")
	table := &fakePlacer{allow: map[Card]bool{}}

	assert.False(t, p.CanPlaySomething(table))
	assert.Zero(t, table.calls, "an empty hand must not be scanned")
}

func TestCanPlaySomethingStopsAtFirstMatch(t *testing.T) {
	p := NewPlayer("Ana")
	p.InsertCard(NewCard(9, Copas))
	p.InsertCard(NewCard(5, Oros))
	p.InsertCard(NewCard(5, Copas))

	table := &fakePlacer{allow: map[Card]bool{NewCard(5, Oros): true, NewCard(5, Copas): true}}
	assert.True(t, p.CanPlaySomething(table))
	assert.Equal(t, 2, table.calls)

	none := &fakePlacer{allow: map[Card]bool{}}
	assert.False(t, p.CanPlaySomething(none))
	assert.Equal(t, 3, none.calls)
}

func TestPlayCard(t *testing.T) {
	p := NewPlayer("Ana")
	p.InsertCard(NewCard(8, Bastos))
	p.InsertCard(NewCard(1, Oros))
	table := &fakePlacer{}

	ace, err := p.PlayCard(table, 1)
	require.NoError(t, err)
	assert.True(t, ace)
	assert.Equal(t, []Card{NewCard(1, Oros)}, table.placed)
	assert.Equal(t, 1, p.Hand().Size())

	ace, err = p.PlayCard(table, 0)
	require.NoError(t, err)
	assert.False(t, ace)
	assert.True(t, p.HandEmpty())

	_, err = p.PlayCard(table, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSurrenderHand(t *testing.T) {
	p := NewPlayer("Ana")
	p.InsertCard(NewCard(2, Copas))
	sink := &sliceSink{}

	p.SurrenderHand(sink)
	assert.True(t, p.HandEmpty())
	assert.Len(t, sink.cards, 1)
}
