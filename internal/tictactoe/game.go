// Package tictactoe runs a single match between a human and the computer.
package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/board"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/judge"
	"github.com/rocketscienceinc/tictactoe-cli/internal/player"
)

const (
	boardWidth  = 3
	boardHeight = 3
)

type Status int

const (
	StatusNotStarted Status = iota
	StatusOngoing
	StatusWon
	StatusDraw
)

func (that Status) String() string {
	switch that {
	case StatusNotStarted:
		return "not started"
	case StatusOngoing:
		return "ongoing"
	case StatusWon:
		return "won"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Game owns the board of the current match. Players only ever see it through a view.
type Game struct {
	rng     *rand.Rand
	started bool

	board    *board.Restricted
	human    *player.Human
	computer player.Player
}

func NewGame(rng *rand.Rand) *Game {
	game := &Game{rng: rng}
	game.reset()

	return game
}

// Initialize starts a new match, discarding the previous one.
func (that *Game) Initialize() {
	that.reset()
	that.started = true
}

func (that *Game) reset() {
	restricted, err := board.NewRestricted(boardWidth, boardHeight)
	if err != nil {
		panic(fmt.Errorf("failed to create board: %w", err))
	}

	that.board = restricted
	that.human = player.NewHuman(restricted.View(), entity.X)
	that.computer = player.NewComputer(restricted.View(), entity.O, that.rng)
	that.started = false
}

func (that *Game) Board() *board.View {
	return that.board.View()
}

func (that *Game) Human() *player.Human {
	return that.human
}

func (that *Game) Computer() player.Player {
	return that.computer
}

// SetHumanPlacement records where the human's next chip goes. The board is not touched until PlaceChips.
func (that *Game) SetHumanPlacement(x, y int) error {
	if !that.started {
		return apperror.ErrGameIsNotStarted
	}

	chip, err := that.board.Get(x, y)
	if err != nil {
		return err
	}

	if chip != entity.Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	return that.human.SetSelected(x, y)
}

func (that *Game) AreValidCoords(x, y int) bool {
	chip, err := that.board.Get(x, y)
	if err != nil {
		return false
	}

	return chip == entity.Empty
}

// PlaceChips places the human's chip and then the computer's, stopping as soon as the match is over.
func (that *Game) PlaceChips() error {
	if !that.started {
		return apperror.ErrGameIsNotStarted
	}

	if that.IsGameOver() {
		return apperror.ErrGameFinished
	}

	for _, p := range that.players() {
		placement, err := p.ChipPlacement()
		if err != nil {
			return fmt.Errorf("%s failed to choose a cell: %w", p, err)
		}

		if err = that.board.Set(placement.X, placement.Y, p.Chip()); err != nil {
			return fmt.Errorf("%s failed to place chip: %w", p, err)
		}

		if that.IsGameOver() {
			return nil
		}
	}

	return nil
}

// Winner returns the player owning a completed line, or nil.
func (that *Game) Winner() player.Player {
	chip := judge.WinningChip(that.board)
	if chip == entity.Empty {
		return nil
	}

	for _, p := range that.players() {
		if p.Chip() == chip {
			return p
		}
	}

	return nil
}

func (that *Game) IsGameOver() bool {
	return that.board.IsFull() || that.Winner() != nil
}

func (that *Game) Status() Status {
	switch {
	case !that.started:
		return StatusNotStarted
	case that.Winner() != nil:
		return StatusWon
	case that.board.IsFull():
		return StatusDraw
	default:
		return StatusOngoing
	}
}

// Snapshot copies the board, top row first.
func (that *Game) Snapshot() [][]entity.Chip {
	rows := make([][]entity.Chip, 0, that.board.Height())
	for y := range that.board.Height() {
		rows = append(rows, that.board.Row(y))
	}

	return rows
}

// Restore starts a match from a board previously taken with Snapshot.
func (that *Game) Restore(rows [][]entity.Chip) error {
	if len(rows) != boardHeight {
		return fmt.Errorf("%w: %d rows", apperror.ErrInvalidSnapshot, len(rows))
	}

	for y, row := range rows {
		if len(row) != boardWidth {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidSnapshot, y, len(row))
		}
	}

	that.Initialize()

	balance := 0

	for y, row := range rows {
		for x, chip := range row {
			if chip == entity.Empty {
				continue
			}

			if err := that.board.Set(x, y, chip); err != nil {
				that.Initialize()
				return fmt.Errorf("failed to restore cell (%d, %d): %w", x, y, err)
			}

			if chip == that.human.Chip() {
				balance++
			} else {
				balance--
			}
		}
	}

	// Both players have moved the same number of times between turns.
	if balance != 0 {
		that.Initialize()
		return fmt.Errorf("%w: unbalanced chip counts", apperror.ErrInvalidSnapshot)
	}

	return nil
}

func (that *Game) players() []player.Player {
	return []player.Player{that.human, that.computer}
}
