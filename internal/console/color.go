// internal/console/color.go
package console

import (
	"strings"

	"github.com/jason-s-yu/cinquillo/internal/models"
)

// ANSI foreground escape codes.
const (
	colorReset   = "\u001B[0m"
	colorRed     = "\u001B[31m"
	colorGreen   = "\u001B[32m"
	colorYellow  = "\u001B[33m"
	colorBlue    = "\u001B[34m"
	colorMagenta = "\u001B[35m"
	colorCyan    = "\u001B[36m"
)

var suitColors = map[models.Suit]string{
	models.Oros:    colorYellow,
	models.Bastos:  colorGreen,
	models.Espadas: colorCyan,
	models.Copas:   colorRed,
}

// paint wraps s in the given colour unless colour output is off.
func (p *Presenter) paint(color, s string) string {
	if !p.color || color == "" {
		return s
	}
	return color + s + colorReset
}

// cardLabel renders a card with its suit name in the suit's colour.
func (p *Presenter) cardLabel(c models.Card) string {
	suit := strings.ToLower(models.SuitName(c.Suit()))
	return models.RankName(c.Rank()) + " de " + p.paint(suitColors[c.Suit()], suit)
}
