// Package cli lets a user play against the computer from a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/board"
	"github.com/rocketscienceinc/tictactoe-cli/internal/player"
)

var errInvalidCoordinate = errors.New("invalid coordinate")

var (
	startMenu = []string{"Play", "Quit"}
	playMenu  = []string{"Place Chip", "Quit"}
)

type matchService interface {
	Resume(ctx context.Context) (bool, error)
	NewMatch(ctx context.Context)

	Board() *board.View
	SelectCell(x, y int) error
	PlayTurn(ctx context.Context) error

	IsGameOver() bool
	Winner() player.Player

	SessionID() string
	Persistent() bool
}

type Server struct {
	logger *slog.Logger
	match  matchService

	in       io.Reader
	lines    chan string
	readOnce sync.Once

	out io.Writer
}

func New(logger *slog.Logger, match matchService, in io.Reader, out io.Writer) *Server {
	return &Server{
		logger: logger.With("component", "cli"),
		match:  match,
		in:     in,
		lines:  make(chan string),
		out:    out,
	}
}

// Start runs the menu loop until the user quits, the input ends or ctx is canceled.
func (that *Server) Start(ctx context.Context) error {
	that.println("Welcome to Tic-Tac-Toe!")

	if that.match.Persistent() {
		that.printf("Session: %s\n", that.match.SessionID())
	}

	resumed, err := that.match.Resume(ctx)
	if err != nil {
		return fmt.Errorf("failed to resume match: %w", err)
	}

	if resumed {
		that.println("Resuming your unfinished match.")

		if err = that.play(ctx); err != nil {
			return err
		}
	}

	for ctx.Err() == nil {
		that.displayMenu(startMenu)

		command, ok := that.prompt(ctx, "Choose an option: ")
		if !ok {
			break
		}

		switch command {
		case "1":
			that.match.NewMatch(ctx)
			if err = that.play(ctx); err != nil {
				return err
			}
		case "2":
			that.println("Goodbye!")
			return nil
		default:
			that.println("Invalid command")
		}
		that.println()
	}

	that.println("Goodbye!")

	return nil
}

func (that *Server) play(ctx context.Context) error {
	for !that.match.IsGameOver() {
		if ctx.Err() != nil {
			return nil
		}

		that.displayBoard()
		that.displayMenu(playMenu)

		command, ok := that.prompt(ctx, "Choose an option: ")
		if !ok {
			return nil
		}

		switch command {
		case "1":
			if err := that.placeChip(ctx); err != nil {
				return err
			}
		case "2":
			that.println("Thanks for playing!")
			return nil
		default:
			that.println("Invalid command")
		}
		that.println()
	}

	that.displayResult()
	that.println("Thanks for playing!")

	return nil
}

// placeChip asks for coordinates until a free cell is chosen or the user gives up.
// Only failures of the turn itself are returned.
func (that *Server) placeChip(ctx context.Context) error {
	that.println("Enter coordinates to indicate where you want to place your chip")

	for {
		x, y, err := that.readCoordinates(ctx)
		if err == nil {
			err = that.match.SelectCell(x, y)
		}

		switch {
		case err == nil:
			if err = that.match.PlayTurn(ctx); err != nil {
				return fmt.Errorf("failed to play turn: %w", err)
			}
			return nil
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, apperror.ErrCellOccupied):
			that.println("That cell is occupied")
		case errors.Is(err, apperror.ErrOutOfRange):
			that.println("Those coordinates are out of bounds")
		case errors.Is(err, errInvalidCoordinate):
			that.println("Invalid coordinate")
		default:
			return err
		}

		that.logger.Debug("placement rejected", "error", err)

		answer, ok := that.prompt(ctx, "Would you like to try again? (y for yes): ")
		if !ok || strings.ToLower(answer) != "y" {
			return nil
		}
	}
}

func (that *Server) readCoordinates(ctx context.Context) (int, int, error) {
	x, err := that.readCoordinate(ctx, "Enter x-coordinate: ")
	if err != nil {
		return 0, 0, err
	}

	y, err := that.readCoordinate(ctx, "Enter y-coordinate: ")
	if err != nil {
		return 0, 0, err
	}

	return x, y, nil
}

func (that *Server) readCoordinate(ctx context.Context, label string) (int, error) {
	raw, ok := that.prompt(ctx, label)
	if !ok {
		return 0, io.EOF
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidCoordinate, raw)
	}

	return value, nil
}

// prompt returns false once the input is exhausted or ctx is canceled.
// The read itself cannot be interrupted, so it runs in its own goroutine.
func (that *Server) prompt(ctx context.Context, label string) (string, bool) {
	that.printf("%s", label)

	that.readOnce.Do(func() {
		go that.readLines()
	})

	select {
	case <-ctx.Done():
		that.println()
		return "", false
	case line, ok := <-that.lines:
		if !ok {
			that.println()
			return "", false
		}

		return strings.TrimSpace(line), true
	}
}

func (that *Server) readLines() {
	defer close(that.lines)

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- scanner.Text()
	}

	if err := scanner.Err(); err != nil {
		that.logger.Error("failed to read input", "error", err)
	}
}

func (that *Server) displayMenu(menu []string) {
	for i, item := range menu {
		that.printf("%d) %s\n", i+1, item)
	}
}

func (that *Server) displayBoard() {
	that.println(RenderBoard(that.match.Board()))
}

func (that *Server) displayResult() {
	that.displayBoard()

	if winner := that.match.Winner(); winner != nil {
		that.printf("%s wins!\n", winner)
		return
	}

	that.println("It's a tie!")
}

func (that *Server) println(a ...any) {
	that.printf("%s\n", fmt.Sprint(a...))
}

func (that *Server) printf(format string, a ...any) {
	if _, err := fmt.Fprintf(that.out, format, a...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

// RenderBoard draws the board row by row with '|' between cells and '-' borders.
func RenderBoard(b board.Reader) string {
	border := strings.Repeat("-", 2*b.Width()+1)

	var sb strings.Builder
	sb.WriteString(border)

	for y := range b.Height() {
		cells := make([]string, 0, b.Width())
		for _, chip := range b.Row(y) {
			cells = append(cells, chip.String())
		}

		sb.WriteString("\n|" + strings.Join(cells, "|") + "|")
		sb.WriteString("\n" + border)
	}

	return sb.String()
}
