package board

import (
	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// View is a read-only alias of another board. Reads always reflect the current
// state of the underlying board.
type View struct {
	board Reader
}

func NewView(board Reader) *View {
	return &View{board: board}
}

func (that *View) Width() int {
	return that.board.Width()
}

func (that *View) Height() int {
	return that.board.Height()
}

func (that *View) Get(x, y int) (entity.Chip, error) {
	return that.board.Get(x, y)
}

func (that *View) Row(y int) []entity.Chip {
	return that.board.Row(y)
}

func (that *View) Col(x int) []entity.Chip {
	return that.board.Col(x)
}

func (that *View) LeftDiagonal(x, y int) []entity.Chip {
	return that.board.LeftDiagonal(x, y)
}

func (that *View) RightDiagonal(x, y int) []entity.Chip {
	return that.board.RightDiagonal(x, y)
}

func (that *View) IsFull() bool {
	return that.board.IsFull()
}

func (that *View) IsEmpty() bool {
	return that.board.IsEmpty()
}

func (that *View) Set(_, _ int, _ entity.Chip) error {
	return apperror.ErrUnsupportedMutation
}

func (that *View) Delete(_, _ int) error {
	return apperror.ErrUnsupportedMutation
}

func (that *View) ClearRow(_ int) error {
	return apperror.ErrUnsupportedMutation
}

func (that *View) ClearCol(_ int) error {
	return apperror.ErrUnsupportedMutation
}

func (that *View) Clear() error {
	return apperror.ErrUnsupportedMutation
}

func (that *View) View() *View {
	return that
}

func (that *View) String() string {
	return render(that)
}
