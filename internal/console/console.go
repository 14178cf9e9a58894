// internal/console/console.go
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jason-s-yu/cinquillo/internal/game"
	"github.com/jason-s-yu/cinquillo/internal/models"
)

// Presenter is a line-oriented text interface for a hot-seat match.
type Presenter struct {
	in    *bufio.Scanner
	out   io.Writer
	color bool
}

// New reads answers from in and writes everything to out. color turns ANSI colours on.
func New(in io.Reader, out io.Writer, color bool) *Presenter {
	return &Presenter{in: bufio.NewScanner(in), out: out, color: color}
}

// readLine prints prompt and returns the next input line without surrounding blanks.
// It returns io.EOF once input is exhausted.
func (p *Presenter) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// readInt keeps asking until the answer parses as an integer.
func (p *Presenter) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := p.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Invalid input. It must be an integer.")
	}
}

func (p *Presenter) PromptPlayerCount(ctx context.Context) (int, error) {
	fmt.Fprintf(p.out, "This is a game for %d or %d players.\n", game.MinPlayers, game.MaxPlayers)
	for {
		n, err := p.readInt(ctx, "How many players are going to play? ")
		if err != nil {
			return 0, err
		}
		if game.ValidPlayerCount(n) {
			return n, nil
		}
	}
}

func (p *Presenter) PromptPlayerName(ctx context.Context, ordinal int) (string, error) {
	for {
		name, err := p.readLine(ctx, fmt.Sprintf("Enter the name of player %d: ", ordinal))
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
}

func (p *Presenter) PromptCardIndex(ctx context.Context, handSize int) (int, error) {
	for {
		idx, err := p.readInt(ctx, "Enter a valid number: ")
		if err != nil {
			return 0, err
		}
		if idx >= 0 && idx < handSize {
			return idx, nil
		}
	}
}

func (p *Presenter) Notify(ev game.Event) {
	msg := ev.Message
	switch ev.Type {
	case game.EventPlayerTurn:
		msg = "Turn of " + p.paint(colorMagenta, ev.Player)
	case game.EventIllegalPlay, game.EventNoLegalMove:
		msg = p.paint(colorRed, msg)
	case game.EventNextPlayer:
		msg = "\n" + p.paint(colorBlue, ">") + " " + msg
	case game.EventRoundWon:
		msg = "\n" + p.paint(colorYellow, "*") + " The winner of the round is: " + p.paint(colorMagenta, ev.Player)
	case game.EventFirstPlayer:
		msg = "\n" + msg
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Presenter) RenderHand(pl *models.Player) {
	fmt.Fprintln(p.out, "Choose a card by typing its number")
	for i, c := range pl.Hand().Cards() {
		fmt.Fprintf(p.out, "\t%d: %s\n", i, p.cardLabel(c))
	}
}

func (p *Presenter) RenderTable(t *game.Table) {
	var sb strings.Builder
	for _, s := range models.Suits() {
		sb.WriteString(p.paint(suitColors[s], models.SuitName(s)))
		sb.WriteString(": ( ")
		for _, c := range t.Pile(s) {
			sb.WriteString(p.cardLabel(c))
			sb.WriteString("; ")
		}
		sb.WriteString(")\n")
	}
	fmt.Fprint(p.out, sb.String())
}

func (p *Presenter) RenderPlayers(players []*models.Player) {
	for _, pl := range players {
		labels := make([]string, 0, pl.Hand().Size())
		for _, c := range pl.Hand().Cards() {
			labels = append(labels, p.cardLabel(c))
		}
		fmt.Fprintf(p.out, "\nName: %s (%d points)\nCards: [%s]\n", pl.Name(), pl.Score(), strings.Join(labels, ", "))
	}
	fmt.Fprintln(p.out)
}
