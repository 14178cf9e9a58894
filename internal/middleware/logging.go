// internal/middleware/logging.go

package middleware

import (
	"context"
	"time"

	"github.com/jason-s-yu/cinquillo/internal/game"
	"github.com/jason-s-yu/cinquillo/internal/models"
	"github.com/sirupsen/logrus"
)

// LoggingPresenter wraps a game.Presenter and logs every prompt with Logrus.
// Prompts are logged with the answer and how long the player took to give it.
type LoggingPresenter struct {
	next   game.Presenter
	logger logrus.FieldLogger
}

// LogPresenter returns a Presenter that logs through logger before delegating to next.
func LogPresenter(logger logrus.FieldLogger, next game.Presenter) *LoggingPresenter {
	return &LoggingPresenter{next: next, logger: logger}
}

func (lp *LoggingPresenter) logPrompt(prompt string, start time.Time, answer interface{}, err error) {
	fields := logrus.Fields{
		"prompt":   prompt,
		"duration": time.Since(start),
	}
	if err != nil {
		lp.logger.WithFields(fields).WithError(err).Warn("Prompt failed")
		return
	}
	fields["answer"] = answer
	lp.logger.WithFields(fields).Debug("Prompt answered")
}

func (lp *LoggingPresenter) PromptPlayerCount(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := lp.next.PromptPlayerCount(ctx)
	lp.logPrompt("player_count", start, n, err)
	return n, err
}

func (lp *LoggingPresenter) PromptPlayerName(ctx context.Context, ordinal int) (string, error) {
	start := time.Now()
	name, err := lp.next.PromptPlayerName(ctx, ordinal)
	lp.logPrompt("player_name", start, name, err)
	return name, err
}

func (lp *LoggingPresenter) PromptCardIndex(ctx context.Context, handSize int) (int, error) {
	start := time.Now()
	idx, err := lp.next.PromptCardIndex(ctx, handSize)
	lp.logPrompt("card_index", start, idx, err)
	return idx, err
}

// Notify logs the event type and player before forwarding it.
func (lp *LoggingPresenter) Notify(ev game.Event) {
	fields := logrus.Fields{"event": ev.Type}
	if ev.Player != "" {
		fields["player"] = ev.Player
	}
	if ev.Points != 0 {
		fields["points"] = ev.Points
	}
	lp.logger.WithFields(fields).Debug(ev.Message)
	lp.next.Notify(ev)
}

func (lp *LoggingPresenter) RenderHand(p *models.Player) {
	lp.logger.WithFields(logrus.Fields{"player": p.Name(), "cards": p.Hand().Size()}).Trace("Render hand")
	lp.next.RenderHand(p)
}

func (lp *LoggingPresenter) RenderTable(t *game.Table) {
	lp.logger.WithField("cards", t.Len()).Trace("Render table")
	lp.next.RenderTable(t)
}

func (lp *LoggingPresenter) RenderPlayers(players []*models.Player) {
	lp.logger.WithField("players", len(players)).Trace("Render players")
	lp.next.RenderPlayers(players)
}
