// Package judge decides whether a board holds a completed line.
package judge

import (
	"github.com/rocketscienceinc/tictactoe-cli/internal/board"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// WinningLineChip returns the chip filling the whole line, or Empty when the
// line is empty, has a gap or mixes chips.
func WinningLineChip(line []entity.Chip) entity.Chip {
	if len(line) == 0 {
		return entity.Empty
	}

	first := line[0]
	for _, chip := range line[1:] {
		if chip != first {
			return entity.Empty
		}
	}

	return first
}

// WinningChip scans rows, then columns, then the two main diagonals and
// returns the chip of the first completed line. Empty means no line is complete.
func WinningChip(b board.Reader) entity.Chip {
	checkers := []func(board.Reader) entity.Chip{
		winningRow,
		winningCol,
		winningDiagonal,
	}

	for _, check := range checkers {
		if chip := check(b); chip != entity.Empty {
			return chip
		}
	}

	return entity.Empty
}

func winningRow(b board.Reader) entity.Chip {
	for y := range b.Height() {
		if chip := WinningLineChip(b.Row(y)); chip != entity.Empty {
			return chip
		}
	}

	return entity.Empty
}

func winningCol(b board.Reader) entity.Chip {
	for x := range b.Width() {
		if chip := WinningLineChip(b.Col(x)); chip != entity.Empty {
			return chip
		}
	}

	return entity.Empty
}

// winningDiagonal only looks at the diagonals starting in the top corners.
func winningDiagonal(b board.Reader) entity.Chip {
	if chip := WinningLineChip(b.LeftDiagonal(0, 0)); chip != entity.Empty {
		return chip
	}

	return WinningLineChip(b.RightDiagonal(b.Width()-1, 0))
}
