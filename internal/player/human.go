package player

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/board"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// Human places its chip wherever the user interface selected last.
type Human struct {
	board board.Reader
	chip  entity.Chip

	selected entity.Coords
}

func NewHuman(view board.Reader, chip entity.Chip) *Human {
	return &Human{
		board: view,
		chip:  chip,
	}
}

func (that *Human) Chip() entity.Chip {
	return that.chip
}

func (that *Human) Selected() entity.Coords {
	return that.selected
}

// SetSelected updates both coordinates, or neither when one is out of bounds.
func (that *Human) SetSelected(x, y int) error {
	if err := that.checkX(x); err != nil {
		return err
	}

	if err := that.checkY(y); err != nil {
		return err
	}

	that.selected = entity.Coords{X: x, Y: y}

	return nil
}

func (that *Human) SetSelectedX(x int) error {
	if err := that.checkX(x); err != nil {
		return err
	}

	that.selected.X = x

	return nil
}

func (that *Human) SetSelectedY(y int) error {
	if err := that.checkY(y); err != nil {
		return err
	}

	that.selected.Y = y

	return nil
}

func (that *Human) ChipPlacement() (entity.Coords, error) {
	return that.selected, nil
}

func (that *Human) String() string {
	return "Human"
}

func (that *Human) checkX(x int) error {
	if x < 0 || x >= that.board.Width() {
		return fmt.Errorf("%w: x=%d is out of bounds of board", apperror.ErrOutOfRange, x)
	}

	return nil
}

func (that *Human) checkY(y int) error {
	if y < 0 || y >= that.board.Height() {
		return fmt.Errorf("%w: y=%d is out of bounds of board", apperror.ErrOutOfRange, y)
	}

	return nil
}
