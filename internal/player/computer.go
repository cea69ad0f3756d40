package player

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/board"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// Computer places its chip on a random empty cell.
type Computer struct {
	board board.Reader
	chip  entity.Chip

	rng *rand.Rand
}

func NewComputer(view board.Reader, chip entity.Chip, rng *rand.Rand) *Computer {
	return &Computer{
		board: view,
		chip:  chip,
		rng:   rng,
	}
}

func (that *Computer) Chip() entity.Chip {
	return that.chip
}

// AvailablePlacements lists the empty cells column by column.
func (that *Computer) AvailablePlacements() []entity.Coords {
	placements := make([]entity.Coords, 0, that.board.Width()*that.board.Height())

	for x := range that.board.Width() {
		for y := range that.board.Height() {
			if chip, _ := that.board.Get(x, y); chip == entity.Empty {
				placements = append(placements, entity.Coords{X: x, Y: y})
			}
		}
	}

	return placements
}

func (that *Computer) ChipPlacement() (entity.Coords, error) {
	placements := that.AvailablePlacements()
	if len(placements) == 0 {
		return entity.Coords{}, apperror.ErrNoAvailableMoves
	}

	return placements[that.rng.Intn(len(placements))], nil
}

func (that *Computer) String() string {
	return "Computer"
}
