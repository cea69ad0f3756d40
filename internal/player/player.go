// Package player provides the two participants of a match.
package player

import (
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// Player decides where its next chip goes.
type Player interface {
	Chip() entity.Chip
	ChipPlacement() (entity.Coords, error)
	String() string
}
