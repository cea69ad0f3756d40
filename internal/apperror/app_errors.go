package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrMatchNotFound    = errors.New("match not found")
)

var (
	ErrOutOfRange          = errors.New("coordinates are out of range")
	ErrUnsupportedMutation = errors.New("board view cannot be modified")
	ErrInvalidChip         = errors.New("invalid chip")
	ErrInvalidSize         = errors.New("board dimensions must be positive")
	ErrInvalidSnapshot     = errors.New("snapshot does not match board dimensions")
)
