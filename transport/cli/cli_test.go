package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/board"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/judge"
	"github.com/rocketscienceinc/tictactoe-cli/internal/player"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-cli/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

// namedPlayer stands in for the players of a fakeMatch.
type namedPlayer struct {
	chip entity.Chip
}

func (that namedPlayer) Chip() entity.Chip {
	return that.chip
}

func (that namedPlayer) ChipPlacement() (entity.Coords, error) {
	return entity.Coords{}, nil
}

func (that namedPlayer) String() string {
	if that.chip == entity.X {
		return "Human"
	}
	return "Computer"
}

// fakeMatch plays the computer's moves from a script.
type fakeMatch struct {
	t *testing.T

	board         *board.Restricted
	computerMoves []entity.Coords
	pending       entity.Coords

	resumed   bool
	resumeErr error
}

func newFakeMatch(t *testing.T, computerMoves ...entity.Coords) *fakeMatch {
	t.Helper()

	match := &fakeMatch{t: t, computerMoves: computerMoves}
	match.reset()

	return match
}

func (that *fakeMatch) reset() {
	b, err := board.NewRestricted(3, 3)
	require.NoError(that.t, err)

	that.board = b
}

func (that *fakeMatch) Resume(_ context.Context) (bool, error) {
	return that.resumed, that.resumeErr
}

func (that *fakeMatch) NewMatch(_ context.Context) {
	that.reset()
}

func (that *fakeMatch) Board() *board.View {
	return that.board.View()
}

func (that *fakeMatch) SelectCell(x, y int) error {
	chip, err := that.board.Get(x, y)
	if err != nil {
		return err
	}

	if chip != entity.Empty {
		return apperror.ErrCellOccupied
	}

	that.pending = entity.Coords{X: x, Y: y}

	return nil
}

func (that *fakeMatch) PlayTurn(_ context.Context) error {
	if err := that.board.Set(that.pending.X, that.pending.Y, entity.X); err != nil {
		return err
	}

	if that.IsGameOver() {
		return nil
	}

	next := that.computerMoves[0]
	that.computerMoves = that.computerMoves[1:]

	return that.board.Set(next.X, next.Y, entity.O)
}

func (that *fakeMatch) IsGameOver() bool {
	return that.board.IsFull() || judge.WinningChip(that.board) != entity.Empty
}

func (that *fakeMatch) Winner() player.Player {
	chip := judge.WinningChip(that.board)
	if chip == entity.Empty {
		return nil
	}

	return namedPlayer{chip: chip}
}

func (that *fakeMatch) SessionID() string {
	return "fake"
}

func (that *fakeMatch) Persistent() bool {
	return false
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func run(t *testing.T, match matchService, input string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := New(discardLogger(), match, strings.NewReader(input), &out).Start(context.Background())

	return out.String(), err
}

func lines(items ...string) string {
	return strings.Join(items, "\n") + "\n"
}

func TestServer_Menus(t *testing.T) {
	t.Run("Quit from the start menu", func(t *testing.T) {
		out, err := run(t, newFakeMatch(t), lines("2"))

		require.NoError(t, err)
		assert.Contains(t, out, "Welcome to Tic-Tac-Toe!")
		assert.Contains(t, out, "1) Play\n2) Quit\n")
		assert.Contains(t, out, "Goodbye!")
		assert.NotContains(t, out, "Session:")
	})

	t.Run("Unknown command", func(t *testing.T) {
		out, err := run(t, newFakeMatch(t), lines("9", "2"))

		require.NoError(t, err)
		assert.Contains(t, out, "Invalid command")
	})

	t.Run("End of input quits", func(t *testing.T) {
		out, err := run(t, newFakeMatch(t), "")

		require.NoError(t, err)
		assert.Contains(t, out, "Goodbye!")
	})

	t.Run("Canceled context quits", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		err := New(discardLogger(), newFakeMatch(t), strings.NewReader(lines("1")), &out).Start(ctx)

		require.NoError(t, err)
		assert.NotContains(t, out.String(), "1) Play")
	})
}

func TestServer_Play(t *testing.T) {
	t.Run("Human wins on the diagonal", func(t *testing.T) {
		// Given: a computer playing (1, 0) and (2, 0)
		match := newFakeMatch(t, entity.Coords{X: 1, Y: 0}, entity.Coords{X: 2, Y: 0})

		// When: the human plays (0, 0), (1, 1), (2, 2)
		out, err := run(t, match, lines(
			"1",
			"1", "0", "0",
			"1", "1", "1",
			"1", "2", "2",
			"2",
		))

		// Then: the final board and the winner are shown
		require.NoError(t, err)
		assert.Contains(t, out, "Human wins!")
		assert.Contains(t, out, "|X|O|O|\n-------\n| |X| |\n-------\n| | |X|")
		assert.Contains(t, out, "Thanks for playing!")
	})

	t.Run("Computer wins", func(t *testing.T) {
		match := newFakeMatch(t, entity.Coords{X: 0, Y: 2}, entity.Coords{X: 1, Y: 2}, entity.Coords{X: 2, Y: 2})

		out, err := run(t, match, lines(
			"1",
			"1", "0", "0",
			"1", "2", "0",
			"1", "0", "1",
			"2",
		))

		require.NoError(t, err)
		assert.Contains(t, out, "Computer wins!")
	})

	t.Run("Draw", func(t *testing.T) {
		match := newFakeMatch(t,
			entity.Coords{X: 1, Y: 1}, entity.Coords{X: 1, Y: 0}, entity.Coords{X: 2, Y: 1}, entity.Coords{X: 0, Y: 2},
		)

		out, err := run(t, match, lines(
			"1",
			"1", "0", "0",
			"1", "2", "0",
			"1", "1", "2",
			"1", "0", "1",
			"1", "2", "2",
			"2",
		))

		require.NoError(t, err)
		assert.Contains(t, out, "It's a tie!")
	})

	t.Run("Quit in the middle of a match", func(t *testing.T) {
		out, err := run(t, newFakeMatch(t, entity.Coords{X: 1, Y: 1}), lines("1", "1", "0", "0", "2", "2"))

		require.NoError(t, err)
		assert.Contains(t, out, "1) Place Chip\n2) Quit\n")
		assert.Contains(t, out, "Thanks for playing!")
		assert.NotContains(t, out, "wins!")
	})
}

func TestServer_PlaceChipErrors(t *testing.T) {
	t.Run("Occupied cell, then retry", func(t *testing.T) {
		// Given: the computer answers the first move on (1, 1)
		match := newFakeMatch(t, entity.Coords{X: 1, Y: 1}, entity.Coords{X: 0, Y: 1})

		// When: the human picks (1, 1) and retries with (2, 2)
		out, err := run(t, match, lines(
			"1",
			"1", "0", "0",
			"1", "1", "1", "y", "2", "2",
			"2", "2",
		))

		// Then: the error is shown and the retry is played
		require.NoError(t, err)
		assert.Contains(t, out, "That cell is occupied")
		assert.Contains(t, out, "Would you like to try again? (y for yes): ")

		chip, err := match.board.Get(2, 2)
		require.NoError(t, err)
		assert.Equal(t, entity.X, chip)
	})

	t.Run("Out of bounds, then give up", func(t *testing.T) {
		match := newFakeMatch(t)

		out, err := run(t, match, lines("1", "1", "5", "5", "n", "2", "2"))

		require.NoError(t, err)
		assert.Contains(t, out, "Those coordinates are out of bounds")
		assert.True(t, match.board.IsEmpty())
	})

	t.Run("Not a number", func(t *testing.T) {
		out, err := run(t, newFakeMatch(t), lines("1", "1", "abc", "n", "2", "2"))

		require.NoError(t, err)
		assert.Contains(t, out, "Invalid coordinate")
	})

	t.Run("Input ends while asking for coordinates", func(t *testing.T) {
		out, err := run(t, newFakeMatch(t), lines("1", "1", "0"))

		require.NoError(t, err)
		assert.Contains(t, out, "Goodbye!")
	})
}

func TestServer_Resume(t *testing.T) {
	t.Run("Resumed match is played first", func(t *testing.T) {
		match := newFakeMatch(t)
		match.resumed = true
		require.NoError(t, match.board.Set(0, 0, entity.X))
		require.NoError(t, match.board.Set(1, 1, entity.O))

		out, err := run(t, match, lines("2", "2"))

		require.NoError(t, err)
		assert.Contains(t, out, "Resuming your unfinished match.")
		assert.Contains(t, out, "|X| | |\n-------\n| |O| |")
	})

	t.Run("Resume failure stops the session", func(t *testing.T) {
		match := newFakeMatch(t)
		match.resumeErr = errStoreDown

		_, err := run(t, match, lines("2"))

		require.ErrorIs(t, err, errStoreDown)
	})
}

// lockedBuffer lets the test read output while Start is still writing it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (that *lockedBuffer) Write(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.Write(p)
}

func (that *lockedBuffer) String() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.String()
}

// startBlocked runs Start over a pipe that only delivers the given input.
func startBlocked(t *testing.T, input string) (*lockedBuffer, context.CancelFunc, <-chan error) {
	t.Helper()

	reader, writer := io.Pipe()
	t.Cleanup(func() {
		_ = writer.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	out := &lockedBuffer{}
	server := New(discardLogger(), newFakeMatch(t, entity.Coords{X: 1, Y: 1}), reader, out)
	done := make(chan error, 1)

	go func() {
		done <- server.Start(ctx)
	}()

	if input != "" {
		_, err := writer.Write([]byte(input))
		require.NoError(t, err)
	}

	return out, cancel, done
}

func TestServer_Cancel(t *testing.T) {
	t.Run("Canceling the context ends a blocked start menu", func(t *testing.T) {
		// Given: a session waiting for a menu choice that never comes
		out, cancel, done := startBlocked(t, "")
		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "Choose an option: ")
		}, time.Second, 10*time.Millisecond)

		// When
		cancel()

		// Then: Start returns without further input
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatalf("Start still blocked after cancel; output: %q", out.String())
		}

		assert.Contains(t, out.String(), "Goodbye!")
	})

	t.Run("Canceling the context ends a blocked coordinate prompt", func(t *testing.T) {
		// Given: a match waiting for the x coordinate
		out, cancel, done := startBlocked(t, lines("1", "1"))
		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "Enter x-coordinate: ")
		}, time.Second, 10*time.Millisecond)

		// When
		cancel()

		// Then: the session ends without asking to try again
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatalf("Start still blocked after cancel; output: %q", out.String())
		}

		assert.NotContains(t, out.String(), "Invalid coordinate")
		assert.NotContains(t, out.String(), "Would you like to try again?")
		assert.Contains(t, out.String(), "Goodbye!")
	})
}

func TestServer_WithMatchManager(t *testing.T) {
	// Given: the real match manager without a match store
	game := tictactoe.NewGame(rand.New(rand.NewSource(4))) //nolint: gosec // deterministic test source
	manager := usecase.NewMatchManager(discardLogger(), game, nil, "local")

	// When: the human plays the center and quits
	out, err := run(t, manager, lines("1", "1", "1", "1", "2", "2"))

	// Then: the center holds X and the computer answered somewhere else
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`\|[ O]\|X\|[ O]\|`), out)
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, 2, 9-len(freeCells(manager.Board())))
}

func TestRenderBoard(t *testing.T) {
	b, err := board.New(3, 3)
	require.NoError(t, err)
	require.NoError(t, b.Set(0, 0, entity.X))
	require.NoError(t, b.Set(1, 1, entity.O))

	assert.Equal(t, strings.Join([]string{
		"-------",
		"|X| | |",
		"-------",
		"| |O| |",
		"-------",
		"| | | |",
		"-------",
	}, "\n"), RenderBoard(b))
}

func freeCells(b board.Reader) []entity.Coords {
	var cells []entity.Coords
	for y := range b.Height() {
		for x, chip := range b.Row(y) {
			if chip == entity.Empty {
				cells = append(cells, entity.Coords{X: x, Y: y})
			}
		}
	}

	return cells
}
