package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/board"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/player"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

type matchRepoDep interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, sessionID string) (*entity.Match, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

// MatchManager drives the game on behalf of the user interface and keeps the
// unfinished match of the session in the match store, if there is one.
type MatchManager struct {
	logger *slog.Logger

	game      *tictactoe.Game
	matchRepo matchRepoDep
	sessionID string
}

// NewMatchManager creates a manager. A nil matchRepo disables saving matches.
func NewMatchManager(logger *slog.Logger, game *tictactoe.Game, matchRepo matchRepoDep, sessionID string) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match-manager", "session", sessionID),

		game:      game,
		matchRepo: matchRepo,
		sessionID: sessionID,
	}
}

func (that *MatchManager) SessionID() string {
	return that.sessionID
}

func (that *MatchManager) Persistent() bool {
	return that.matchRepo != nil
}

// Resume restores the saved match of the session. It reports false when there was nothing to continue.
func (that *MatchManager) Resume(ctx context.Context) (bool, error) {
	if !that.Persistent() {
		return false, nil
	}

	log := that.logger.With("method", "Resume")

	match, err := that.matchRepo.GetByID(ctx, that.sessionID)
	if errors.Is(err, apperror.ErrMatchNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to get match: %w", err)
	}

	if err = that.game.Restore(match.Board); err != nil || that.game.IsGameOver() {
		log.Warn("discarding saved match", "error", err, "status", that.game.Status())
		that.deleteMatch(ctx)

		return false, nil
	}

	log.Info("match resumed", "updated_at", match.UpdatedAt)

	return true, nil
}

func (that *MatchManager) NewMatch(ctx context.Context) {
	that.game.Initialize()
	that.logger.Info("match started")

	that.saveMatch(ctx)
}

func (that *MatchManager) Board() *board.View {
	return that.game.Board()
}

func (that *MatchManager) AreValidCoords(x, y int) bool {
	return that.game.AreValidCoords(x, y)
}

func (that *MatchManager) SelectCell(x, y int) error {
	if err := that.game.SetHumanPlacement(x, y); err != nil {
		return fmt.Errorf("failed to select cell: %w", err)
	}

	return nil
}

// PlayTurn commits the selected cell and lets the computer answer.
func (that *MatchManager) PlayTurn(ctx context.Context) error {
	log := that.logger.With("method", "PlayTurn")

	if err := that.game.PlaceChips(); err != nil {
		return fmt.Errorf("failed to place chips: %w", err)
	}

	log.Debug("chips placed", "selected", that.game.Human().Selected())

	if !that.game.IsGameOver() {
		that.saveMatch(ctx)
		return nil
	}

	winner := "none"
	if p := that.game.Winner(); p != nil {
		winner = p.String()
	}

	log.Info("match finished", "status", that.game.Status(), "winner", winner)
	that.deleteMatch(ctx)

	return nil
}

func (that *MatchManager) IsGameOver() bool {
	return that.game.IsGameOver()
}

func (that *MatchManager) Winner() player.Player {
	return that.game.Winner()
}

func (that *MatchManager) Status() tictactoe.Status {
	return that.game.Status()
}

func (that *MatchManager) saveMatch(ctx context.Context) {
	if !that.Persistent() {
		return
	}

	match := entity.NewMatch(that.sessionID, that.game.Snapshot())
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		that.logger.Error("failed to save match", "error", err)
	}
}

func (that *MatchManager) deleteMatch(ctx context.Context) {
	if !that.Persistent() {
		return
	}

	err := that.matchRepo.DeleteByID(ctx, that.sessionID)
	if err != nil && !errors.Is(err, apperror.ErrMatchNotFound) {
		that.logger.Error("failed to delete match", "error", err)
	}
}
