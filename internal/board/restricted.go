package board

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// Restricted is a board where an occupied cell has to be deleted before it can hold another chip.
type Restricted struct {
	*Grid
}

func NewRestricted(width, height int) (*Restricted, error) {
	grid, err := New(width, height)
	if err != nil {
		return nil, err
	}

	return &Restricted{Grid: grid}, nil
}

func (that *Restricted) Set(x, y int, chip entity.Chip) error {
	current, err := that.Get(x, y)
	if err != nil {
		return err
	}

	if current != entity.Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	return that.Grid.Set(x, y, chip)
}

func (that *Restricted) View() *View {
	return NewView(that)
}
