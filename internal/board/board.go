// Package board implements the grid of chips a match is played on.
//
// Three variants share the Board contract: Grid accepts any write, Restricted
// refuses to overwrite an occupied cell and View refuses every write.
package board

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// Reader is the read side of a board.
type Reader interface {
	Width() int
	Height() int

	Get(x, y int) (entity.Chip, error)

	Row(y int) []entity.Chip
	Col(x int) []entity.Chip
	LeftDiagonal(x, y int) []entity.Chip
	RightDiagonal(x, y int) []entity.Chip

	IsFull() bool
	IsEmpty() bool
}

type Board interface {
	Reader

	Set(x, y int, chip entity.Chip) error
	Delete(x, y int) error

	ClearRow(y int) error
	ClearCol(x int) error
	Clear() error

	View() *View
}

// Grid is a width x height board that accepts any write inside its bounds.
type Grid struct {
	width  int
	height int

	cells [][]entity.Chip
}

func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidSize, width, height)
	}

	cells := make([][]entity.Chip, height)
	for y := range cells {
		cells[y] = make([]entity.Chip, width)
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

func (that *Grid) Width() int {
	return that.width
}

func (that *Grid) Height() int {
	return that.height
}

func (that *Grid) Get(x, y int) (entity.Chip, error) {
	if !inBounds(that, x, y) {
		return entity.Empty, outOfRange(x, y)
	}

	return that.cells[y][x], nil
}

func (that *Grid) Set(x, y int, chip entity.Chip) error {
	if !chip.IsValid() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidChip, chip)
	}

	if !inBounds(that, x, y) {
		return outOfRange(x, y)
	}

	that.cells[y][x] = chip

	return nil
}

// Delete replaces the chip at (x, y) with an empty one.
func (that *Grid) Delete(x, y int) error {
	return that.Set(x, y, entity.Empty)
}

func (that *Grid) ClearRow(y int) error {
	for x := range that.width {
		if err := that.Delete(x, y); err != nil {
			return fmt.Errorf("failed to clear row: %w", err)
		}
	}

	return nil
}

func (that *Grid) ClearCol(x int) error {
	for y := range that.height {
		if err := that.Delete(x, y); err != nil {
			return fmt.Errorf("failed to clear column: %w", err)
		}
	}

	return nil
}

func (that *Grid) Clear() error {
	for y := range that.cells {
		clear(that.cells[y])
	}

	return nil
}

func (that *Grid) Row(y int) []entity.Chip {
	return row(that, y)
}

func (that *Grid) Col(x int) []entity.Chip {
	return col(that, x)
}

func (that *Grid) LeftDiagonal(x, y int) []entity.Chip {
	return walk(that, x, y, 1)
}

func (that *Grid) RightDiagonal(x, y int) []entity.Chip {
	return walk(that, x, y, -1)
}

func (that *Grid) IsFull() bool {
	return !contains(that, func(chip entity.Chip) bool { return chip == entity.Empty })
}

func (that *Grid) IsEmpty() bool {
	return !contains(that, func(chip entity.Chip) bool { return chip != entity.Empty })
}

func (that *Grid) View() *View {
	return NewView(that)
}

func (that *Grid) String() string {
	return render(that)
}

func inBounds(b Reader, x, y int) bool {
	return x >= 0 && x < b.Width() && y >= 0 && y < b.Height()
}

func outOfRange(x, y int) error {
	return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, x, y)
}

// row returns nil when y is outside the board.
func row(b Reader, y int) []entity.Chip {
	if y < 0 || y >= b.Height() {
		return nil
	}

	line := make([]entity.Chip, 0, b.Width())
	for x := range b.Width() {
		chip, _ := b.Get(x, y)
		line = append(line, chip)
	}

	return line
}

// col returns nil when x is outside the board.
func col(b Reader, x int) []entity.Chip {
	if x < 0 || x >= b.Width() {
		return nil
	}

	line := make([]entity.Chip, 0, b.Height())
	for y := range b.Height() {
		chip, _ := b.Get(x, y)
		line = append(line, chip)
	}

	return line
}

// walk collects chips moving (dx, +1) from (x, y) until a coordinate leaves the board.
func walk(b Reader, x, y, dx int) []entity.Chip {
	var line []entity.Chip

	for inBounds(b, x, y) {
		chip, _ := b.Get(x, y)
		line = append(line, chip)

		x += dx
		y++
	}

	return line
}

func contains(b Reader, match func(entity.Chip) bool) bool {
	for y := range b.Height() {
		for _, chip := range row(b, y) {
			if match(chip) {
				return true
			}
		}
	}

	return false
}

func render(b Reader) string {
	rows := make([]string, 0, b.Height())
	for y := range b.Height() {
		rows = append(rows, fmt.Sprint(row(b, y)))
	}

	return strings.Join(rows, "\n")
}
