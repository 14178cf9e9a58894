package game

import (
	"testing"

	"github.com/jason-s-yu/cinquillo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(rank int, s models.Suit) models.Card { return models.NewCard(rank, s) }

func TestCanPlaceOnEmptyPile(t *testing.T) {
	table := NewTable()
	for _, s := range models.Suits() {
		for rank := models.MinRank; rank <= models.MaxRank; rank++ {
			assert.Equal(t, rank == 5, table.CanPlace(card(rank, s)), "%v on empty pile", card(rank, s))
		}
	}
}

func TestPileGrowsAtBothEnds(t *testing.T) {
	table := NewTable()
	for _, c := range []models.Card{card(5, models.Copas), card(6, models.Copas), card(4, models.Copas)} {
		require.True(t, table.CanPlace(c))
		table.Place(c)
	}

	assert.Equal(t, []models.Card{card(4, models.Copas), card(5, models.Copas), card(6, models.Copas)}, table.Pile(models.Copas))
	assert.True(t, table.CanPlace(card(3, models.Copas)))
	assert.True(t, table.CanPlace(card(7, models.Copas)))
	assert.False(t, table.CanPlace(card(8, models.Copas)))
	assert.False(t, table.CanPlace(card(2, models.Copas)))

	// other piles are unaffected
	assert.False(t, table.CanPlace(card(6, models.Oros)))
	assert.True(t, table.CanPlace(card(5, models.Oros)))
}

func TestPlaceSignalsOnlyTheAceOfOros(t *testing.T) {
	table := NewTable()
	for _, s := range models.Suits() {
		for rank := 5; rank >= 2; rank-- {
			require.False(t, table.Place(card(rank, s)))
		}
	}
	for _, s := range []models.Suit{models.Bastos, models.Espadas, models.Copas} {
		require.True(t, table.CanPlace(card(1, s)))
		assert.False(t, table.Place(card(1, s)), "ace of %s", s)
	}
	require.True(t, table.CanPlace(card(1, models.Oros)))
	assert.True(t, table.Place(card(1, models.Oros)))

	for rank := 6; rank <= 12; rank++ {
		assert.False(t, table.Place(card(rank, models.Oros)))
	}
	assert.Len(t, table.Pile(models.Oros), 12)
}

func TestTableReset(t *testing.T) {
	table := NewTable()
	table.Place(card(5, models.Oros))
	table.Place(card(4, models.Oros))
	table.Place(card(5, models.Espadas))
	require.Equal(t, 3, table.Len())

	d := &Deck{}
	table.Reset(d)

	assert.Zero(t, table.Len())
	assert.Equal(t, 3, d.Len())
	assert.True(t, table.CanPlace(card(5, models.Oros)))
	assert.False(t, table.CanPlace(card(3, models.Oros)))
}

func TestTableRender(t *testing.T) {
	table := NewTable()
	table.Place(card(5, models.Bastos))
	table.Place(card(4, models.Bastos))

	want := "Oros: ( )\n" +
		"Bastos: ( 4 de bastos; 5 de bastos; )\n" +
		"Espadas: ( )\n" +
		"Copas: ( )\n"
	assert.Equal(t, want, table.Render())
	assert.Equal(t, want, table.Render(), "render must not change the table")
}
