package game

import (
	"math/rand"
	"testing"

	"github.com/jason-s-yu/cinquillo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRand returns scripted values and remembers the bound of every call.
type recordingRand struct {
	values []int
	bounds []int
}

func (r *recordingRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func TestNewDeckHasEveryCardOnce(t *testing.T) {
	d := NewDeck()
	require.Equal(t, DeckSize, d.Len())

	seen := map[models.Card]bool{}
	for _, c := range d.Cards() {
		require.True(t, c.Valid(), "invalid card %v", c)
		require.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 48)
}

func TestDeckDrawIsLastInFirstOut(t *testing.T) {
	d := &Deck{}
	d.Insert(models.NewCard(3, models.Oros))
	d.Insert(models.NewCard(7, models.Copas))

	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, models.NewCard(7, models.Copas), c)

	c, err = d.Draw()
	require.NoError(t, err)
	assert.Equal(t, models.NewCard(3, models.Oros), c)

	assert.True(t, d.IsEmpty())
	_, err = d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestShuffleIsPermutation(t *testing.T) {
	d := NewDeck()
	before := map[models.Card]bool{}
	for _, c := range d.Cards() {
		before[c] = true
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		d.Shuffle(rng)
		after := map[models.Card]bool{}
		for _, c := range d.Cards() {
			after[c] = true
		}
		require.Equal(t, DeckSize, d.Len())
		require.Equal(t, before, after)
	}
}

func TestShuffleSwapsAgainstWholeRange(t *testing.T) {
	a := models.NewCard(1, models.Oros)
	b := models.NewCard(2, models.Oros)
	c := models.NewCard(3, models.Oros)
	d := &Deck{}
	d.Insert(a)
	d.Insert(b)
	d.Insert(c)

	// Popped order is [c b a]; every swap targets position 0.
	// mov=0: [c b a], mov=1: [b c a], mov=2: [a c b]; pushed back bottom to top.
	r := &recordingRand{}
	d.Shuffle(r)

	assert.Equal(t, []int{3, 3, 3}, r.bounds, "each swap target is drawn from the full range")
	assert.Equal(t, []models.Card{a, c, b}, d.Cards())
}

func TestShuffleEmptyDeck(t *testing.T) {
	d := &Deck{}
	r := &recordingRand{}
	d.Shuffle(r)
	assert.True(t, d.IsEmpty())
	assert.Empty(t, r.bounds)
}
