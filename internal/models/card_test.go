package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardLabels(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{NewCard(1, Oros), "As de oros"},
		{NewCard(5, Bastos), "5 de bastos"},
		{NewCard(10, Espadas), "Sota de espadas"},
		{NewCard(11, Copas), "Caballo de copas"},
		{NewCard(12, Oros), "Rey de oros"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.card.String())
	}
}

func TestCardIsAce(t *testing.T) {
	assert.True(t, NewCard(1, Oros).IsAce())
	for _, s := range []Suit{Bastos, Espadas, Copas} {
		assert.False(t, NewCard(1, s).IsAce(), "ace of %s must not end the match", s)
	}
	assert.False(t, NewCard(5, Oros).IsAce())
}

func TestCardValid(t *testing.T) {
	assert.True(t, NewCard(12, Copas).Valid())
	assert.False(t, NewCard(0, Copas).Valid())
	assert.False(t, NewCard(13, Oros).Valid())
	assert.False(t, NewCard(3, Suit(7)).Valid())
}
